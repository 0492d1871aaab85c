package schema

import (
	"errors"
	"os"
	"sort"

	json "github.com/goccy/go-json"
)

// JSON schema dumps are produced externally by walking the host's reflection
// metadata, one file per module, then merged into a single document. The
// loader accepts both shapes: a flat {"classes": ..., "enums": ...} object,
// or a merged document keyed by module name with one such object per module.

type jsonField struct {
	Offset    int64  `json:"offset"`
	Type      string `json:"type"`
	Networked bool   `json:"networked"`
}

type jsonClass struct {
	Parent string               `json:"parent"`
	Chain  int64                `json:"chain"`
	Fields map[string]jsonField `json:"fields"`
}

type jsonEnum struct {
	Alignment int              `json:"alignment"`
	Members   map[string]int64 `json:"members"`
}

type jsonModule struct {
	Classes map[string]jsonClass `json:"classes"`
	Enums   map[string]jsonEnum  `json:"enums"`
}

// Load reads a schema dump from a JSON file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "cannot read file", Err: err}
	}
	return Parse(data, path)
}

// Parse builds a Registry from raw schema JSON. The source string is used
// only in error messages.
func Parse(data []byte, source string) (*Registry, error) {
	modules, err := decodeModules(data)
	if err != nil {
		return nil, &LoadError{Source: source, Message: "invalid schema JSON", Err: err}
	}

	b := NewBuilder()
	for _, mod := range modules {
		if err := addModule(b, mod); err != nil {
			return nil, &LoadError{Source: source, Message: "invalid schema data", Err: err}
		}
	}
	return b.Build(), nil
}

func decodeModules(data []byte) ([]jsonModule, error) {
	// Try the flat shape first.
	var flat jsonModule
	if err := json.Unmarshal(data, &flat); err == nil && (len(flat.Classes) > 0 || len(flat.Enums) > 0) {
		return []jsonModule{flat}, nil
	}

	// Merged shape: module name -> {classes, enums}.
	var merged map[string]jsonModule
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	modules := make([]jsonModule, 0, len(names))
	for _, name := range names {
		modules = append(modules, merged[name])
	}
	return modules, nil
}

func addModule(b *Builder, mod jsonModule) error {
	classNames := make([]string, 0, len(mod.Classes))
	for name := range mod.Classes {
		classNames = append(classNames, name)
	}
	sort.Strings(classNames)

	for _, name := range classNames {
		jc := mod.Classes[name]

		fieldNames := make([]string, 0, len(jc.Fields))
		for fname := range jc.Fields {
			fieldNames = append(fieldNames, fname)
		}
		sort.Strings(fieldNames)

		fields := make([]Field, 0, len(fieldNames))
		for _, fname := range fieldNames {
			jf := jc.Fields[fname]
			fields = append(fields, Field{
				Name:      fname,
				Type:      jf.Type,
				Offset:    jf.Offset,
				Networked: jf.Networked,
			})
		}

		// Merged dumps can repeat a class across modules; keep the first.
		if err := b.AddClass(name, jc.Parent, jc.Chain, fields); err != nil && !errors.Is(err, ErrDuplicateClass) {
			return err
		}
	}

	enumNames := make([]string, 0, len(mod.Enums))
	for name := range mod.Enums {
		enumNames = append(enumNames, name)
	}
	sort.Strings(enumNames)

	for _, name := range enumNames {
		je := mod.Enums[name]

		width := je.Alignment
		if width == 0 {
			width = 4
		}

		// The dump maps symbol -> value; decoding needs value -> symbol.
		// Aliased values keep the lexically first symbol, deterministically.
		members := make(map[int64]string, len(je.Members))
		symbols := make([]string, 0, len(je.Members))
		for sym := range je.Members {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)
		for _, sym := range symbols {
			v := je.Members[sym]
			if _, ok := members[v]; !ok {
				members[v] = sym
			}
		}

		if err := b.AddEnum(name, width, members); err != nil {
			return err
		}
	}
	return nil
}
