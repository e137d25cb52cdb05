package corpus

import (
	"strconv"

	"github.com/vichi100/style-api-server/internal/domain"
)

// Flatten decomposes a rule document into independently embeddable text
// fragments. Nested objects contribute a "key: " path prefix so each
// fragment stays self-describing outside its document; plain strings inside
// arrays are treated as leaf values named by their parent key.
//
// Rule books that are a top-level array of named entries (the colour
// dictionary shape) reference each other by array index under a
// "combinations" key. Those numeric references are resolved to the entry
// name here, at ingestion time, so retrieval never has to re-resolve IDs
// from fragment text.
func Flatten(doc Document) []domain.RuleFragment {
	fl := flattener{names: entryNames(doc.Root)}
	fl.walk(doc.Root, "", false)
	frags := make([]domain.RuleFragment, len(fl.out))
	for i, text := range fl.out {
		frags[i] = domain.RuleFragment{Source: doc.Filename, Text: text}
	}
	return frags
}

type flattener struct {
	names map[int]string
	out   []string
}

func (f *flattener) walk(v Value, prefix string, inCombinations bool) {
	switch v.Kind {
	case KindObject:
		for _, m := range v.Members {
			f.walk(m.Value, prefix+m.Key+": ", m.Key == "combinations")
		}
	case KindArray:
		for i, item := range v.Items {
			if item.Kind == KindString {
				f.out = append(f.out, prefix+item.Str)
				continue
			}
			f.walk(item, prefix+strconv.Itoa(i)+": ", inCombinations)
		}
	case KindNumber:
		if inCombinations {
			if idx, err := strconv.Atoi(v.Str); err == nil {
				if name, ok := f.names[idx]; ok {
					f.out = append(f.out, prefix+name)
					return
				}
			}
		}
		f.out = append(f.out, prefix+v.Str)
	default:
		f.out = append(f.out, prefix+v.ScalarText())
	}
}

// entryNames indexes a top-level array of objects by position -> "name"
// member. Returns nil for any other document shape.
func entryNames(root Value) map[int]string {
	if root.Kind != KindArray {
		return nil
	}
	var names map[int]string
	for i, item := range root.Items {
		name, ok := item.Lookup("name")
		if !ok || name.Kind != KindString {
			continue
		}
		if names == nil {
			names = make(map[int]string, len(root.Items))
		}
		names[i] = name.Str
	}
	return names
}
