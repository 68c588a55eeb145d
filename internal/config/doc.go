// Package config loads the tool configuration.
//
// Values come from an optional HCL file (pbxproj.hcl), then an optional .env
// file next to it, then the process environment. Later sources win. The
// defaults block carries build settings applied to targets the tool creates;
// it is evaluated as an HCL expression with the merged environment available
// as env.NAME.
package config
