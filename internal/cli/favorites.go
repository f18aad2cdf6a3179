package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/smartchef/skillet/internal/presentation/tui"
)

// ListFavorites prints the durable favorites book.
func ListFavorites(ctx context.Context, opts RunOptions) error {
	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}

	d := buildDeps(cfg, logger)
	defer d.cleanup()

	if d.favorites == nil {
		return fmt.Errorf("no favorites store configured (set redis.addr in the config file)")
	}

	favs, err := d.favorites.List(ctx)
	if err != nil {
		return fmt.Errorf("error listing favorites: %w", err)
	}
	if len(favs) == 0 {
		fmt.Println("No favorites saved yet.")
		return nil
	}

	render := tui.NewRenderer()
	for i, fav := range favs {
		var sb strings.Builder
		fmt.Fprintf(&sb, "# Favorite %d\n\n", i+1)
		fmt.Fprintf(&sb, "_Saved %s_\n\n", fav.SavedAt.Format("2006-01-02 15:04"))
		sb.WriteString(fav.Recipe)
		if fav.Notes != "" {
			sb.WriteString("\n\n**Notes:** " + fav.Notes)
		}
		fmt.Println(render(sb.String()))
	}
	return nil
}
