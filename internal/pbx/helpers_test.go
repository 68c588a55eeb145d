package pbx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/pbxproj/internal/objectid"
	"github.com/vk/pbxproj/internal/plist"
)

// sampleProject is a small project: a main group with a Sources group, one
// file, a variant group, one target with a sources phase and a dangling
// reference in its dependencies.
const sampleProject = `// !$*UTF8*$!
{
	archiveVersion = 1;
	classes = {
	};
	objectVersion = 56;
	objects = {
		AA0000000000000000000001 /* Project object */ = {
			isa = PBXProject;
			attributes = {
				LastUpgradeCheck = 1500;
				TargetAttributes = {
					AA0000000000000000000040 = {
						CreatedOnToolsVersion = 15.0;
					};
				};
			};
			buildConfigurationList = AA0000000000000000000080;
			mainGroup = AA0000000000000000000010;
			projectDirPath = "";
			targets = (
				AA0000000000000000000040,
			);
		};
		AA0000000000000000000010 = {
			isa = PBXGroup;
			children = (
				AA0000000000000000000011,
			);
			sourceTree = "<group>";
		};
		AA0000000000000000000011 /* Sources */ = {
			isa = PBXGroup;
			children = (
				AA0000000000000000000020,
				AA0000000000000000000030,
			);
			path = Sources;
			sourceTree = "<group>";
		};
		AA0000000000000000000020 /* main.c */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.c.c; path = main.c; sourceTree = "<group>"; fileEncoding = 4; customFlag = keep; };
		AA0000000000000000000030 /* Main.storyboard */ = {
			isa = PBXVariantGroup;
			children = (
				AA0000000000000000000031,
				AA0000000000000000000032,
			);
			name = Main.storyboard;
			sourceTree = "<group>";
		};
		AA0000000000000000000031 = {isa = PBXFileReference; name = fr; path = fr.lproj/Main.strings; sourceTree = "<group>"; };
		AA0000000000000000000032 = {isa = PBXFileReference; name = Base; path = Base.lproj/Main.storyboard; sourceTree = "<group>"; };
		AA0000000000000000000040 /* App */ = {
			isa = PBXNativeTarget;
			buildConfigurationList = AA0000000000000000000080;
			buildPhases = (
				AA0000000000000000000050,
			);
			dependencies = (
				AA00000000000000000000FF,
			);
			name = App;
			productType = "com.apple.product-type.tool";
		};
		AA0000000000000000000050 = {
			isa = PBXSourcesBuildPhase;
			buildActionMask = 2147483647;
			files = (
				AA0000000000000000000060,
			);
			runOnlyForDeploymentPostprocessing = 0;
		};
		AA0000000000000000000060 = {isa = PBXBuildFile; fileRef = AA0000000000000000000020; };
		AA0000000000000000000080 = {
			isa = XCConfigurationList;
			buildConfigurations = (
				AA0000000000000000000090,
			);
			defaultConfigurationName = Debug;
		};
		AA0000000000000000000090 = {
			isa = XCBuildConfiguration;
			buildSettings = {
				OTHER_LDFLAGS = (
					"-ObjC",
				);
				SDKROOT = macosx;
			};
			name = Debug;
		};
	};
	rootObject = AA0000000000000000000001;
}
`

func decodeString(t *testing.T, text string) *Document {
	t.Helper()
	root, err := plist.Parse([]byte(text))
	require.NoError(t, err)
	doc, err := Decode(root)
	require.NoError(t, err)
	return doc
}

func mustGet[T Object](t *testing.T, doc *Document, id string) T {
	t.Helper()
	obj, ok := doc.Get(objectid.ID(id))
	require.True(t, ok, "object %s not found", id)
	typed, ok := obj.(T)
	require.True(t, ok, "object %s is %s", id, obj.Kind())
	return typed
}
