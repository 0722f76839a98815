package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hhforecast/household-forecast/internal/config"
	"github.com/hhforecast/household-forecast/internal/server"
	"github.com/hhforecast/household-forecast/internal/storage"
)

func newServeCommand(o *options) *cobra.Command {
	var addr, from string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve forecasts over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := o.engine(cmd)
			if err != nil {
				return err
			}
			store, err := o.serveStore(from)
			if err != nil {
				return err
			}
			return server.New(engine, store, o.key).ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr(), "listen address")
	cmd.Flags().StringVar(&from, "from", "", "serve a household read from this YAML or JSON data file instead of the store")

	return cmd
}

// serveStore picks the store the server reads. A data file is loaded once into
// memory and the on-disk store is left alone.
func (o *options) serveStore(from string) (storage.Store, error) {
	if from == "" {
		return o.store(), nil
	}
	m, err := config.NewInputParser().LoadFromFile(from)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", from, err)
	}
	store := storage.NewMemoryStore()
	if err := store.Save(context.Background(), o.key, m); err != nil {
		return nil, err
	}
	return store, nil
}

// defaultAddr honours PORT the way container platforms set it.
func defaultAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}
