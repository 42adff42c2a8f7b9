package constants

// FolderColors is the palette a folder color must be picked from.
// The first entry is the default.
var FolderColors = []string{
	"#6366F1",
	"#EF4444",
	"#10B981",
	"#F59E0B",
	"#EC4899",
	"#8B5CF6",
	"#06B6D4",
	"#84CC16",
}

func DefaultFolderColor() string {
	return FolderColors[0]
}

func ValidFolderColor(color string) bool {
	for _, c := range FolderColors {
		if c == color {
			return true
		}
	}
	return false
}
