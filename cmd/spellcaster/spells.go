package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arcwand/spellcaster/internal/config"
	"github.com/arcwand/spellcaster/internal/gesture"
	"github.com/arcwand/spellcaster/internal/spellbook"
	"github.com/arcwand/spellcaster/internal/store"
)

var spellsCmd = &cobra.Command{
	Use:   "spells",
	Short: "Manage the spell book",
}

var spellsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all spells",
	RunE: func(cmd *cobra.Command, args []string) error {
		book, st, err := loadBook()
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tNAME\tINCANTATION\tTEMPLATE\tCUSTOM")
		for _, s := range book.All() {
			custom := ""
			if s.Custom {
				custom = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Key, s.Name, s.Incantation, s.Template, custom)
		}
		return w.Flush()
	},
}

var (
	addName        string
	addIncantation string
	addDescription string
	addColor       string
)

var spellsAddCmd = &cobra.Command{
	Use:   "add <key> <template>",
	Short: "Add a custom spell mapped to a gesture template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, template := args[0], args[1]

		settings, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		st, err := openStore(settings)
		if err != nil {
			return err
		}
		defer st.Close()

		name := addName
		if name == "" {
			name = key
		}
		spell := spellbook.Spell{
			Key:         key,
			Name:        name,
			Incantation: addIncantation,
			Description: addDescription,
			Color:       addColor,
			Template:    template,
			Custom:      true,
		}

		// Validate against the template library before persisting.
		book := spellbook.NewBook()
		if err := book.Add(spell); err != nil {
			return err
		}

		err = st.Spells().Create(&store.Spell{
			ID:          uuid.New().String(),
			Key:         spell.Key,
			Name:        spell.Name,
			Incantation: spell.Incantation,
			Description: spell.Description,
			Color:       spell.Color,
			Template:    spell.Template,
		})
		if err != nil {
			return fmt.Errorf("failed to save spell: %w", err)
		}

		fmt.Printf("Added spell %s (template %s)\n", key, template)
		return nil
	},
}

var spellsRemoveCmd = &cobra.Command{
	Use:   "remove <key>",
	Short: "Remove a custom spell",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		settings, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		st, err := openStore(settings)
		if err != nil {
			return err
		}
		defer st.Close()

		sp, err := st.Spells().GetByKey(key)
		if err != nil {
			return fmt.Errorf("no custom spell %q", key)
		}
		if err := st.Spells().Delete(sp.ID); err != nil {
			return err
		}

		fmt.Printf("Removed spell %s\n", key)
		return nil
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in gesture templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, shape := range gesture.Library() {
			fmt.Println(shape.Name())
		}
		return nil
	},
}

// loadBook builds the spell book from the defaults plus any custom spells
// in the store. A store open failure falls back to defaults only.
func loadBook() (*spellbook.Book, *store.Store, error) {
	book := spellbook.NewBook()

	settings, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.New(settings.Database.Path)
	if err != nil {
		return book, nil, nil
	}

	spells, err := st.Spells().List()
	if err != nil {
		return book, st, nil
	}
	for _, sp := range spells {
		book.Add(spellbook.Spell{
			Key:         sp.Key,
			Name:        sp.Name,
			Incantation: sp.Incantation,
			Description: sp.Description,
			Color:       sp.Color,
			Template:    sp.Template,
			Custom:      true,
		})
	}
	return book, st, nil
}

func init() {
	spellsAddCmd.Flags().StringVar(&addName, "name", "", "display name")
	spellsAddCmd.Flags().StringVar(&addIncantation, "incantation", "", "spoken incantation")
	spellsAddCmd.Flags().StringVar(&addDescription, "description", "", "spell description")
	spellsAddCmd.Flags().StringVar(&addColor, "color", "", "display color, e.g. #ffaa00")

	spellsCmd.AddCommand(spellsListCmd)
	spellsCmd.AddCommand(spellsAddCmd)
	spellsCmd.AddCommand(spellsRemoveCmd)
}
