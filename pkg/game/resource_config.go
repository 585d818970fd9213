package game

// ResourceConfig represents the sprite slot table loaded from YAML.
// It defines the structure of data/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets/png
//	sprites:
//	  - id: santa
//	    path: Santa.png
type ResourceConfig struct {
	Version  string          `yaml:"version"`   // Configuration file version
	BasePath string          `yaml:"base_path"` // Base path for all sprites (e.g., "assets/png")
	Sprites  []ImageResource `yaml:"sprites"`   // Sprite slots in declaration order
}

// ImageResource represents a single sprite slot definition.
//
// Fields:
//   - ID: Unique slot identifier (e.g., "santa", "present0")
//   - Path: Relative path from base_path to the image file
type ImageResource struct {
	ID   string `yaml:"id"`   // Slot ID (unique identifier)
	Path string `yaml:"path"` // Relative file path from base_path
}
