package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/inkcache/internal/app"
)

// addSettingsFlags registers the flags that override project file values.
func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output-dir", "o", "", "Directory receiving the project output")
	cmd.Flags().StringP("project", "p", "", "Project subfolder name")
	cmd.Flags().Float64("dpi", 0, "Export resolution passed to the renderer")
	cmd.Flags().Float64("page-opacity", 0, "Page opacity of the final composite (0 to 1)")
	cmd.Flags().Int("max-per-group", 0, "Maximum number of tiles composited in one pass")
	cmd.Flags().String("inkscape", "", "Renderer executable")
	cmd.Flags().Int("thumbnail-width", 0, "Width of thumbnail.png, 0 disables it")
}

// settingsOptions collects the config path and every flag the user set.
func settingsOptions(cmd *cobra.Command) app.SettingsOptions {
	configPath, _ := cmd.Flags().GetString("config")
	flags := cmd.Flags()

	var o app.Overrides
	if flags.Changed("output-dir") {
		v, _ := flags.GetString("output-dir")
		o.OutputDir = &v
	}
	if flags.Changed("project") {
		v, _ := flags.GetString("project")
		o.ProjectName = &v
	}
	if flags.Changed("dpi") {
		v, _ := flags.GetFloat64("dpi")
		o.DPI = &v
	}
	if flags.Changed("page-opacity") {
		v, _ := flags.GetFloat64("page-opacity")
		o.PageOpacity = &v
	}
	if flags.Changed("max-per-group") {
		v, _ := flags.GetInt("max-per-group")
		o.MaxPerGroup = &v
	}
	if flags.Changed("inkscape") {
		v, _ := flags.GetString("inkscape")
		o.RendererBinary = &v
	}
	if flags.Changed("thumbnail-width") {
		v, _ := flags.GetInt("thumbnail-width")
		o.ThumbnailWidth = &v
	}

	return app.SettingsOptions{ConfigPath: configPath, Overrides: o}
}

func exportOptions(cmd *cobra.Command) app.ExportOptions {
	force, _ := cmd.Flags().GetBool("force")
	return app.ExportOptions{
		SettingsOptions: settingsOptions(cmd),
		Force:           force,
	}
}
