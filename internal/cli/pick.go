package cli

import (
	"context"
	"os"
	"strconv"

	"github.com/posener/complete"

	"github.com/semmy-space/lnch/internal/config"
	"github.com/semmy-space/lnch/internal/output"
	"github.com/semmy-space/lnch/internal/store"
	"github.com/semmy-space/lnch/internal/tui"
)

// PickCmd opens the interactive picker
type PickCmd struct {
	Stay bool `help:"Keep the picker open after opening an item"`
}

// Run executes the pick command
func (cmd *PickCmd) Run(app *App) error {
	if !app.globals.interactive() {
		return output.NewCLIError(output.ExitUsage, "pick needs an interactive terminal").
			WithHint("Use: lnch open <ref>")
	}

	s, err := app.Store()
	if err != nil {
		return err
	}
	d, err := app.Dispatcher()
	if err != nil {
		return err
	}

	opened, err := tui.Run(context.Background(), tui.Options{
		Items:      s,
		Dispatcher: d,
		Logger:     app.Logger(),
		ItemsPath:  s.Path(),
		StayOpen:   cmd.Stay,
	})
	if err != nil {
		return output.Wrap(output.ExitGeneral, "picker failed", err)
	}
	if opened != "" {
		app.fp.Formatter.PrintMessage("Opened " + opened)
	}
	return nil
}

// ItemPredictor completes item refs with the saved names and positions. It
// reads the config named by LNCH_CONFIG, or the default one.
func ItemPredictor() complete.Predictor {
	return complete.PredictFunc(func(complete.Args) []string {
		var (
			cfg *config.Config
			err error
		)
		if path := os.Getenv("LNCH_CONFIG"); path != "" {
			cfg, err = config.LoadFrom(path)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return nil
		}
		s, err := store.Open(cfg.ItemsPath())
		if err != nil {
			return nil
		}
		return itemRefs(s)
	})
}

func itemRefs(s *store.Store) []string {
	items, err := s.List()
	if err != nil {
		return nil
	}

	refs := make([]string, 0, len(items))
	for i, it := range items {
		if it.Name != "" {
			refs = append(refs, it.Name)
		} else {
			refs = append(refs, strconv.Itoa(i+1))
		}
	}
	return refs
}
