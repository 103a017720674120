package config

// Inkfile represents the structure of the inkcache.yaml configuration file.
type Inkfile struct {
	OutputDirectory string      `yaml:"output_directory"`
	ProjectName     string      `yaml:"project_name"`
	DPI             *float64    `yaml:"dpi"`
	PageOpacity     *float64    `yaml:"page_opacity"`
	MaxPerGroup     *int        `yaml:"max_per_group"`
	ThumbnailWidth  int         `yaml:"thumbnail_width"`
	Renderer        RendererDTO `yaml:"renderer"`
}

// RendererDTO configures the external renderer.
type RendererDTO struct {
	Binary    string   `yaml:"binary"`
	ExtraArgs []string `yaml:"extra_args"`
}
