package engine

import "github.com/hammamikhairi/lrcgen/internal/domain"

// Menus are built per call so that no table is shared between goroutines.

func mainMenu() domain.Menu {
	return domain.Menu{
		Title: "Main menu",
		Items: []domain.MenuItem{
			{Key: "0", Action: "Synchronize lyrics"},
			{Key: "1", Action: "Preview"},
			{Key: "2", Action: "Edit metadata"},
			{Key: "any", Action: "Save and quit"},
		},
	}
}

func syncMenu(pause, restart domain.Key) domain.Menu {
	return domain.Menu{
		Title: "Synchronizing",
		Items: []domain.MenuItem{
			{Key: pause.String(), Action: "Pause / resume"},
			{Key: restart.String(), Action: "Restart"},
			{Key: "up", Action: "Volume up"},
			{Key: "down", Action: "Volume down"},
			{Key: "any", Action: "Next line"},
		},
	}
}

func previewMenu() domain.Menu {
	return domain.Menu{
		Title: "Preview",
		Items: []domain.MenuItem{
			{Key: "any", Action: "Back to menu (at the end)"},
		},
	}
}

func confirmMenu() domain.Menu {
	return domain.Menu{
		Title: "Preview",
		Items: []domain.MenuItem{
			{Key: "y", Action: "Synchronize now"},
			{Key: "any", Action: "Back to menu"},
		},
	}
}

func metadataMenu() domain.Menu {
	return domain.Menu{
		Title: "Metadata",
		Items: []domain.MenuItem{
			{Key: "0", Action: "Title"},
			{Key: "1", Action: "Album"},
			{Key: "2", Action: "Artist"},
			{Key: "3", Action: "Creator"},
			{Key: "any", Action: "Back to menu"},
		},
	}
}

// finalMenu is the last value the generator produces.
func finalMenu(err error) domain.Menu {
	m := domain.Menu{Title: "Saved", Final: true}
	if err != nil {
		m.Title = "Failed to save"
		m.Items = []domain.MenuItem{{Key: "!", Action: err.Error()}}
	}
	return m
}
