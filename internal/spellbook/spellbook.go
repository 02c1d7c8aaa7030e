// Package spellbook holds spell definitions: the label identity used by
// the classifier plus the display metadata rendered by result sinks.
package spellbook

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arcwand/spellcaster/internal/gesture"
)

// Spell is one castable spell. Key is the classifier label; Template names
// the gesture template the spell is trained from.
type Spell struct {
	Key         string
	Name        string
	Incantation string
	Description string
	Color       string
	Template    string
	Custom      bool
}

// Defaults returns the built-in spells matching the Universal Orlando
// interactive wand gestures.
func Defaults() []Spell {
	return []Spell{
		{
			Key:         "alohomora",
			Name:        "Alohomora",
			Incantation: "Ah-LOH-ho-MOR-ah",
			Description: "The Unlocking Charm - opens locked doors and windows",
			Color:       "#FFD700",
			Template:    "circle_cw",
		},
		{
			Key:         "revelio",
			Name:        "Revelio",
			Incantation: "reh-VEL-ee-oh",
			Description: "Revealing Charm - reveals hidden objects",
			Color:       "#DA70D6",
			Template:    "circle_ccw",
		},
		{
			Key:         "lumos",
			Name:        "Lumos",
			Incantation: "LOO-mos",
			Description: "Wand-Lighting Charm - illuminates the wand tip",
			Color:       "#FFFACD",
			Template:    "flick_up",
		},
		{
			Key:         "nox",
			Name:        "Nox",
			Incantation: "NOCKS",
			Description: "Counter-charm to Lumos - extinguishes light",
			Color:       "#2F4F4F",
			Template:    "flick_down",
		},
		{
			Key:         "incendio",
			Name:        "Incendio",
			Incantation: "in-SEN-dee-oh",
			Description: "Fire-Making Spell - produces flames",
			Color:       "#FF4500",
			Template:    "diagonal_up_right",
		},
		{
			Key:         "aguamenti",
			Name:        "Aguamenti",
			Incantation: "AH-gwah-MEN-tee",
			Description: "Water-Making Spell - produces water",
			Color:       "#4169E1",
			Template:    "s_curve",
		},
		{
			Key:         "wingardium_leviosa",
			Name:        "Wingardium Leviosa",
			Incantation: "win-GAR-dee-um lev-ee-OH-sa",
			Description: "Levitation Charm - makes objects float",
			Color:       "#9370DB",
			Template:    "swish_flick",
		},
		{
			Key:         "arresto_momentum",
			Name:        "Arresto Momentum",
			Incantation: "ah-REST-oh mo-MEN-tum",
			Description: "Slowing Charm - decreases velocity",
			Color:       "#87CEEB",
			Template:    "wave_horizontal",
		},
	}
}

// Suggested returns the catalog of extra spells ready to be added with a
// template already assigned.
func Suggested() []Spell {
	return []Spell{
		{Key: "stupefy", Name: "Stupefy", Incantation: "STOO-puh-fye", Description: "Stunning Spell - renders target unconscious", Color: "#FF0000", Template: "lightning_bolt"},
		{Key: "expelliarmus", Name: "Expelliarmus", Incantation: "ex-PELL-ee-AR-mus", Description: "Disarming Charm - forces opponent to drop wand", Color: "#FF6600", Template: "diagonal_up_right"},
		{Key: "protego", Name: "Protego", Incantation: "pro-TAY-go", Description: "Shield Charm - creates magical barrier", Color: "#00BFFF", Template: "circle_ccw"},
		{Key: "expecto_patronum", Name: "Expecto Patronum", Incantation: "ex-PEK-toh pa-TRO-num", Description: "Patronus Charm - summons protective guardian", Color: "#FFFFFF", Template: "spiral_out"},
		{Key: "accio", Name: "Accio", Incantation: "AK-see-oh", Description: "Summoning Charm - brings object to caster", Color: "#9932CC", Template: "spiral_in"},
		{Key: "obliviate", Name: "Obliviate", Incantation: "oh-BLI-vee-ate", Description: "Memory Charm - erases memories", Color: "#4B0082", Template: "wave_horizontal"},
		{Key: "petrificus_totalus", Name: "Petrificus Totalus", Incantation: "pe-TRI-fi-kus to-TAH-lus", Description: "Full Body-Bind Curse - paralyzes target", Color: "#808080", Template: "flick_down"},
		{Key: "riddikulus", Name: "Riddikulus", Incantation: "rih-DIH-kuh-lus", Description: "Boggart Banishing Spell - makes fears funny", Color: "#FFD700", Template: "zigzag"},
		{Key: "reparo", Name: "Reparo", Incantation: "reh-PAH-roh", Description: "Mending Charm - repairs broken objects", Color: "#32CD32", Template: "circle_cw"},
		{Key: "finite_incantatem", Name: "Finite Incantatem", Incantation: "fi-NEE-tay in-can-TAH-tem", Description: "Counter-spell - terminates spell effects", Color: "#C0C0C0", Template: "x_mark"},
		{Key: "confundo", Name: "Confundo", Incantation: "con-FUN-doh", Description: "Confundus Charm - causes confusion", Color: "#DDA0DD", Template: "figure_eight"},
		{Key: "imperio", Name: "Imperio", Incantation: "im-PEER-ee-oh", Description: "Imperius Curse - controls target (Unforgivable)", Color: "#8B0000", Template: "wave_vertical"},
		{Key: "crucio", Name: "Crucio", Incantation: "KROO-see-oh", Description: "Cruciatus Curse - causes pain (Unforgivable)", Color: "#8B0000", Template: "lightning_bolt"},
		{Key: "avada_kedavra", Name: "Avada Kedavra", Incantation: "ah-VAH-dah keh-DAV-rah", Description: "Killing Curse (Unforgivable)", Color: "#00FF00", Template: "triangle"},
		{Key: "sectumsempra", Name: "Sectumsempra", Incantation: "sec-tum-SEMP-rah", Description: "Slashing curse - causes deep cuts", Color: "#8B0000", Template: "diagonal_down_right"},
		{Key: "levicorpus", Name: "Levicorpus", Incantation: "leh-vee-COR-pus", Description: "Dangles target upside down", Color: "#9370DB", Template: "flick_up"},
		{Key: "muffliato", Name: "Muffliato", Incantation: "muf-lee-AH-to", Description: "Creates buzzing to prevent eavesdropping", Color: "#A9A9A9", Template: "wave_horizontal"},
		{Key: "episkey", Name: "Episkey", Incantation: "ee-PIS-key", Description: "Healing spell for minor injuries", Color: "#98FB98", Template: "checkmark"},
		{Key: "engorgio", Name: "Engorgio", Incantation: "en-GOR-jee-oh", Description: "Engorgement Charm - makes things larger", Color: "#FF8C00", Template: "spiral_out"},
		{Key: "reducio", Name: "Reducio", Incantation: "re-DOO-see-oh", Description: "Shrinking Charm - makes things smaller", Color: "#00CED1", Template: "spiral_in"},
	}
}

// SuggestedByKey looks up a spell in the suggested catalog.
func SuggestedByKey(key string) (Spell, bool) {
	for _, s := range Suggested() {
		if s.Key == key {
			return s, true
		}
	}
	return Spell{}, false
}

// Book is the active spell set: built-in spells plus any custom additions,
// keyed by label. Safe for concurrent use.
type Book struct {
	spells map[string]Spell
	mu     sync.RWMutex
}

// NewBook creates a Book seeded with the built-in spells.
func NewBook() *Book {
	b := &Book{spells: make(map[string]Spell)}
	for _, s := range Defaults() {
		b.spells[s.Key] = s
	}
	return b
}

// Add inserts or replaces a spell. The spell's template must exist in the
// gesture template library.
func (b *Book) Add(s Spell) error {
	if s.Key == "" {
		return fmt.Errorf("spell key is empty")
	}
	if _, ok := gesture.ShapeByName(s.Template); !ok {
		return fmt.Errorf("unknown gesture template %q", s.Template)
	}
	b.mu.Lock()
	b.spells[s.Key] = s
	b.mu.Unlock()
	return nil
}

// Remove deletes a spell by key.
func (b *Book) Remove(key string) {
	b.mu.Lock()
	delete(b.spells, key)
	b.mu.Unlock()
}

// Get looks up a spell by key.
func (b *Book) Get(key string) (Spell, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.spells[key]
	return s, ok
}

// Len returns the number of spells in the book.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.spells)
}

// All returns the spells sorted by key.
func (b *Book) All() []Spell {
	b.mu.RLock()
	defer b.mu.RUnlock()
	spells := make([]Spell, 0, len(b.spells))
	for _, s := range b.spells {
		spells = append(spells, s)
	}
	sort.Slice(spells, func(i, j int) bool { return spells[i].Key < spells[j].Key })
	return spells
}

// Shapes resolves every spell's template into the label-to-shape mapping
// consumed by classifier training.
func (b *Book) Shapes() map[string]gesture.Shape {
	b.mu.RLock()
	defer b.mu.RUnlock()
	shapes := make(map[string]gesture.Shape, len(b.spells))
	for key, s := range b.spells {
		if shape, ok := gesture.ShapeByName(s.Template); ok {
			shapes[key] = shape
		}
	}
	return shapes
}
