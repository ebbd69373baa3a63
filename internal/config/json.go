package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/keywire/internal/hotkey"
)

// LoadJSON reads and parses a JSON configuration file.
func LoadJSON(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return ParseJSON(path, data)
}

// ParseJSON parses JSON configuration data. The source name is used in
// error messages only.
func ParseJSON(source string, data []byte) (*File, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}
	doc := gjson.ParseBytes(data)

	var f File
	doc.Get("contexts").ForEach(func(_, value gjson.Result) bool {
		f.Contexts = append(f.Contexts, value.String())
		return true
	})
	doc.Get("bindings").ForEach(func(_, value gjson.Result) bool {
		def := BindingDef{
			Key:             value.Get("key").String(),
			When:            value.Get("when").String(),
			Action:          value.Get("action").String(),
			PreventDefault:  value.Get("prevent_default").Bool(),
			StopPropagation: value.Get("stop_propagation").Bool(),
			Description:     value.Get("description").String(),
		}
		value.Get("modifiers").ForEach(func(_, mod gjson.Result) bool {
			def.Modifiers = append(def.Modifiers, mod.String())
			return true
		})
		f.Bindings = append(f.Bindings, def)
		return true
	})
	return &f, nil
}

// ExportJSON renders the dispatcher's registered shortcuts and active
// contexts as a JSON document, suitable for inspection or round-trip
// loading. Handlers cannot be serialized, so the action field carries
// each binding's description.
func ExportJSON(d *hotkey.Dispatcher) ([]byte, error) {
	out := []byte(`{}`)
	var err error

	for _, name := range d.Contexts() {
		out, err = sjson.SetBytes(out, "contexts.-1", name)
		if err != nil {
			return nil, fmt.Errorf("exporting contexts: %w", err)
		}
	}

	for i, info := range d.Bindings() {
		prefix := fmt.Sprintf("bindings.%d.", i)
		set := func(path string, value any) {
			if err != nil {
				return
			}
			out, err = sjson.SetBytes(out, prefix+path, value)
		}
		set("key", info.Key)
		if !info.Modifiers.IsEmpty() {
			set("modifiers", strings.Split(info.Modifiers.String(), "+"))
		}
		if !info.When.IsAlways() {
			set("when", info.When.String())
		}
		set("action", info.Description)
		if info.PreventDefault {
			set("prevent_default", true)
		}
		if info.StopPropagation {
			set("stop_propagation", true)
		}
		if err != nil {
			return nil, fmt.Errorf("exporting binding %d: %w", i, err)
		}
	}
	return out, nil
}
