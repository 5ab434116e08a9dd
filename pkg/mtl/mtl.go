// Package mtl parses Landsat MTL metadata files into a nested
// group/key/value structure. Both the post-2012 LPGS format and the
// legacy NLAPS-era format parse the same way; only key names differ,
// which is the caller's problem.
package mtl

import(
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// A MissingKeyError reports a calibration key that the metadata file
// does not carry.
type MissingKeyError struct {
	Group string
	Key   string
}

func (e MissingKeyError)Error() string {
	return fmt.Sprintf("metadata group %s has no key %s", e.Group, e.Key)
}

// A Group is one GROUP ... END_GROUP block: scalar values keyed by
// name, plus nested groups.
type Group struct {
	Name   string
	vals   map[string]interface{}
	groups map[string]*Group
}

func newGroup(name string) *Group {
	return &Group{
		Name:   name,
		vals:   map[string]interface{}{},
		groups: map[string]*Group{},
	}
}

func (g *Group)Group(name string) (*Group, error) {
	sub, ok := g.groups[name]
	if !ok {
		return nil, MissingKeyError{Group: g.Name, Key: name}
	}
	return sub, nil
}

func (g *Group)Has(key string) bool {
	_, ok := g.vals[key]
	return ok
}

// HasGroup reports whether a nested group exists, without the error
// ceremony of Group().
func (g *Group)HasGroup(name string) bool {
	_, ok := g.groups[name]
	return ok
}

func (g *Group)Str(key string) (string, error) {
	v, ok := g.vals[key]
	if !ok {
		return "", MissingKeyError{Group: g.Name, Key: key}
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case time.Time:
		return t.Format("2006-01-02"), nil
	}
	return fmt.Sprintf("%v", v), nil
}

func (g *Group)Float(key string) (float64, error) {
	v, ok := g.vals[key]
	if !ok {
		return 0, MissingKeyError{Group: g.Name, Key: key}
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("metadata key %s/%s is %q, not a number", g.Name, key, t)
		}
		return f, nil
	}
	return 0, fmt.Errorf("metadata key %s/%s is not numeric", g.Name, key)
}

func (g *Group)Int(key string) (int, error) {
	f, err := g.Float(key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func (g *Group)Date(key string) (time.Time, error) {
	v, ok := g.vals[key]
	if !ok {
		return time.Time{}, MissingKeyError{Group: g.Name, Key: key}
	}
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		d, err := time.Parse("2006-01-02", t)
		if err != nil {
			return time.Time{}, fmt.Errorf("metadata key %s/%s is %q, not a date", g.Name, key, t)
		}
		return d, nil
	}
	return time.Time{}, fmt.Errorf("metadata key %s/%s is not a date", g.Name, key)
}

// Parse reads MTL text. The returned group is the outermost one,
// normally L1_METADATA_FILE.
func Parse(r io.Reader) (*Group, error) {
	root := newGroup("")
	stack := []*Group{root}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "END" {
			continue
		}
		key, val, found := strings.Cut(line, "=")
		if !found {
			continue // MTL files contain no bare lines worth keeping
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		cur := stack[len(stack)-1]
		switch key {
		case "GROUP":
			sub := newGroup(val)
			cur.groups[val] = sub
			stack = append(stack, sub)
		case "END_GROUP":
			if len(stack) == 1 {
				return nil, fmt.Errorf("unbalanced END_GROUP = %s", val)
			}
			stack = stack[:len(stack)-1]
		default:
			cur.vals[key] = parseValue(val)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading metadata: %v", err)
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("metadata ends inside group %s", stack[len(stack)-1].Name)
	}

	// Unwrap the single outermost group
	if len(root.groups) == 1 {
		for _, g := range root.groups {
			return g, nil
		}
	}
	return root, nil
}

func parseValue(s string) interface{} {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d
	}
	return s
}

// ParseFile parses a single metadata file.
func ParseFile(path string) (*Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open metadata %s: %v", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// ParseDir locates the scene's MTL file inside a scene directory and
// parses it.
func ParseDir(dirname string) (*Group, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, fmt.Errorf("readdir %s: %v", dirname, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToUpper(e.Name())
		if strings.HasSuffix(name, "_MTL.TXT") {
			return ParseFile(filepath.Join(dirname, e.Name()))
		}
	}
	return nil, fmt.Errorf("no *_MTL.txt metadata file in %s", dirname)
}
