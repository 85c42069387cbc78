// Package counters persists the kiosk's usage counters across restarts.
//
// Counters live in a small JSON file inside the configuration directory
// and are updated in place, so external dashboards can tail the file
// without understanding any schema beyond the four keys.
package counters

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Counter keys in the JSON file.
const (
	keyTaken     = "taken"
	keyPrinted   = "printed"
	keyForgotten = "forgotten"
	keyRemaining = "remaining_duplicates"
)

// Counters tracks pictures taken, printed and forgotten, plus the
// remaining duplicate prints allowed for the current picture. Every
// mutation is written through to disk immediately; a kiosk can lose power
// at any moment.
type Counters struct {
	path string
	data []byte
}

// Load reads the counters file, creating it with zero counts (and the
// given duplicate budget) if absent.
func Load(path string, maxDuplicates int) (*Counters, error) {
	c := &Counters{path: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		c.data = []byte("{}")
		for _, k := range []string{keyTaken, keyPrinted, keyForgotten} {
			c.data, _ = sjson.SetBytes(c.data, k, 0)
		}
		c.data, _ = sjson.SetBytes(c.data, keyRemaining, maxDuplicates)
		if err := c.flush(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("reading counters %s: %w", path, err)
	default:
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("counters file %s is not valid JSON", path)
		}
		c.data = data
	}

	return c, nil
}

// Taken returns the number of pictures taken.
func (c *Counters) Taken() int {
	return int(gjson.GetBytes(c.data, keyTaken).Int())
}

// Printed returns the number of pictures printed.
func (c *Counters) Printed() int {
	return int(gjson.GetBytes(c.data, keyPrinted).Int())
}

// Forgotten returns the number of pictures never collected.
func (c *Counters) Forgotten() int {
	return int(gjson.GetBytes(c.data, keyForgotten).Int())
}

// RemainingDuplicates returns the duplicate prints left for the current
// picture.
func (c *Counters) RemainingDuplicates() int {
	return int(gjson.GetBytes(c.data, keyRemaining).Int())
}

// IncrementTaken records one more picture taken.
func (c *Counters) IncrementTaken() error {
	return c.add(keyTaken, 1)
}

// IncrementPrinted records one more picture printed.
func (c *Counters) IncrementPrinted() error {
	return c.add(keyPrinted, 1)
}

// IncrementForgotten records one more picture never collected.
func (c *Counters) IncrementForgotten() error {
	return c.add(keyForgotten, 1)
}

// ConsumeDuplicate decrements the duplicate budget, stopping at zero.
func (c *Counters) ConsumeDuplicate() error {
	if c.RemainingDuplicates() <= 0 {
		return nil
	}
	return c.add(keyRemaining, -1)
}

// ResetDuplicates restores the duplicate budget for a new picture.
func (c *Counters) ResetDuplicates(max int) error {
	return c.set(keyRemaining, max)
}

func (c *Counters) add(key string, delta int) error {
	return c.set(key, int(gjson.GetBytes(c.data, key).Int())+delta)
}

func (c *Counters) set(key string, value int) error {
	data, err := sjson.SetBytes(c.data, key, value)
	if err != nil {
		return fmt.Errorf("updating counter %s: %w", key, err)
	}
	c.data = data
	return c.flush()
}

func (c *Counters) flush() error {
	if err := os.WriteFile(c.path, c.data, 0o644); err != nil {
		return fmt.Errorf("writing counters %s: %w", c.path, err)
	}
	return nil
}
