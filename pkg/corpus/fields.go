package corpus

// Field names a string sequence carried by every IntentGroup.
type Field string

const (
	FieldUtterances      Field = "utterances"
	FieldTests           Field = "tests"
	FieldAnnotUtterances Field = "annotUtterances"
	FieldAnnotTests      Field = "annotTests"
)

// AllFields lists every mappable field.
var AllFields = []Field{FieldUtterances, FieldTests, FieldAnnotUtterances, FieldAnnotTests}

func (g *IntentGroup) field(name Field) (*[]string, error) {
	switch name {
	case FieldUtterances:
		return &g.Utterances, nil
	case FieldTests:
		return &g.Tests, nil
	case FieldAnnotUtterances:
		return &g.AnnotUtterances, nil
	case FieldAnnotTests:
		return &g.AnnotTests, nil
	default:
		return nil, &SchemaViolation{Field: name}
	}
}

// Map returns a copy of c where fn has been applied to every element of the
// named fields of every group. Order and length are preserved, so plain and
// annotated sequences stay aligned. c itself is never modified.
func Map(c *Corpus, fn func(string) string, fields ...Field) (*Corpus, error) {
	var probe IntentGroup
	for _, name := range fields {
		if _, err := probe.field(name); err != nil {
			return nil, err
		}
	}

	out := c.Clone()
	for i := range out.Data {
		for _, name := range fields {
			seq, err := out.Data[i].field(name)
			if err != nil {
				return nil, err
			}
			if *seq == nil {
				continue
			}
			mapped := make([]string, len(*seq))
			for j, s := range *seq {
				mapped[j] = fn(s)
			}
			*seq = mapped
		}
	}
	return out, nil
}
