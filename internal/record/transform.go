package record

// Transform projects a record down to a reduced field set. A nil Transform
// is the identity. Transforms run once, on the assembled result page; they
// never see intermediate merge state.
type Transform func(Record) Record

// Project returns a transform that keeps only the named fields. Fields the
// record does not have are skipped rather than materialized as Absent.
func Project(fields ...string) Transform {
	return func(r Record) Record {
		out := make(Record, len(fields))
		for _, f := range fields {
			if v, ok := r[f]; ok {
				out[f] = v
			}
		}
		return out
	}
}

// Projection is the declarative wire form of a Transform: a field whitelist
// plus optional renames applied to the kept fields.
type Projection struct {
	Fields []string          `json:"fields,omitempty"`
	Rename map[string]string `json:"rename,omitempty"`
}

// Transform compiles the projection. A nil projection or one with no field
// list compiles to nil, the identity.
func (p *Projection) Transform() Transform {
	if p == nil || len(p.Fields) == 0 {
		return nil
	}
	fields := make([]string, len(p.Fields))
	copy(fields, p.Fields)
	rename := make(map[string]string, len(p.Rename))
	for from, to := range p.Rename {
		rename[from] = to
	}

	return func(r Record) Record {
		out := make(Record, len(fields))
		for _, f := range fields {
			v, ok := r[f]
			if !ok {
				continue
			}
			name := f
			if to, ok := rename[f]; ok {
				name = to
			}
			out[name] = v
		}
		return out
	}
}

// Apply runs the transform over a slice, treating nil as identity. The input
// slice is never aliased into the result.
func Apply(t Transform, recs []Record) []Record {
	out := make([]Record, len(recs))
	for i, r := range recs {
		if t == nil {
			out[i] = r.Clone()
		} else {
			out[i] = t(r)
		}
	}
	return out
}
