package export

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"picdoc/config"
	"picdoc/document"
	"picdoc/editor"
	"picdoc/notify"
	"picdoc/project"
	"picdoc/state"
)

// Run is the export subcommand action. SOURCE is either a project file (YAML)
// or a directory of photos; DESTINATION is the output directory.
func Run(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	cfg := env.Cfg

	source := cmd.Args().Get(0)
	if source == "" {
		return errors.New("no source specified, see help for details")
	}
	dest := cmd.Args().Get(1)
	if dest == "" {
		dest = cfg.Export.Destination
	}
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if cmd.IsSet("to") {
		format, err := config.ParseOutputFmt(cmd.String("to"))
		if err != nil {
			return err
		}
		cfg.Export.Format = format
	}
	fi, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("unable to access source: %w", err)
	}
	var spec *project.Spec
	if fi.IsDir() {
		spec, err = project.FromDirectory(source, cmd.String("template"))
	} else {
		spec, err = project.Load(source)
	}
	if err != nil {
		return err
	}

	// command line wins over the project file, project file over configuration
	quality := spec.Quality
	if cmd.IsSet("quality") {
		quality = cmd.String("quality")
	}
	if quality != "" {
		tier, err := config.ParseQualityTier(quality)
		if err != nil {
			return err
		}
		cfg.Export.Quality = tier
	}

	m := document.NewModel(env.Log, cfg.Document.DefaultTitle)
	defer m.Release()
	ed := editor.NewController(m, env.Log, notify.Log{L: env.Log},
		editor.WithMaxUploadBytes(cfg.Document.Images.MaxUploadBytes))

	if err := spec.Materialize(m, ed, env.Log); err != nil {
		return fmt.Errorf("unable to materialize project: %w", err)
	}

	runner := NewRunner(cfg, m, ed,
		DirGateway{Dir: dest, Overwrite: env.Overwrite || cmd.Bool("overwrite")},
		notify.Log{L: env.Log}, env.Log,
		WithBrokenGlyph(env.DefaultGlyphs[state.GlyphPosBrokenImage]))

	res, err := runner.Export(ctx)
	if errors.Is(err, ErrCancelled) {
		env.Log.Warn("Export cancelled, nothing was produced")
		return nil
	}
	if err != nil {
		return err
	}
	for _, path := range res.Paths {
		env.Log.Info("Output created", zap.String("file", path))
	}
	if len(res.FailedPages) > 0 {
		env.Log.Warn("Some pages were skipped", zap.Ints("pages", res.FailedPages))
	}
	if res.Degraded {
		env.Log.Warn("Some images rendered as placeholders")
	}
	return nil
}
