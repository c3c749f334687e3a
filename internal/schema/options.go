// Defines option vocabularies shared by select, multi_select and
// status fields, with the bidirectional key/name maps used by the
// value codec, the definition codec and the upsert filter builder.

package schema

// Option is one choice of a select-style vocabulary. Key is the local
// stable identifier; Label is the remote display name and defaults to
// Key when empty.
type Option struct {
	Key   string
	Label string
	Color string
	// ID is the remote-assigned option identifier when known.
	ID string
}

// Name returns the display name of the option.
func (o Option) Name() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Key
}

// Options is an ordered option vocabulary.
type Options []Option

// OptionNames builds an identity vocabulary from bare display names,
// where each local key equals its name.
func OptionNames(names ...string) Options {
	opts := make(Options, 0, len(names))
	for _, n := range names {
		opts = append(opts, Option{Key: n})
	}
	return opts
}

// NameByKey returns the key to display name direction of the
// vocabulary.
func (o Options) NameByKey() map[string]string {
	m := make(map[string]string, len(o))
	for _, opt := range o {
		m[opt.Key] = opt.Name()
	}
	return m
}

// KeyByName returns the display name to key direction of the
// vocabulary.
func (o Options) KeyByName() map[string]string {
	m := make(map[string]string, len(o))
	for _, opt := range o {
		m[opt.Name()] = opt.Key
	}
	return m
}

// Group is a labeled, colored option set of a status field.
type Group struct {
	Key   string
	Label string
	Color string
	// ID is the remote-assigned group identifier when known.
	ID      string
	Options Options
}

// Name returns the display name of the group.
func (g Group) Name() string {
	if g.Label != "" {
		return g.Label
	}
	return g.Key
}

// FlattenGroups merges all groups' option sets into one vocabulary,
// in group then option order. Status name/key translation operates on
// the flattened set since a status value does not identify its group.
func FlattenGroups(groups []Group) Options {
	var opts Options
	for _, g := range groups {
		opts = append(opts, g.Options...)
	}
	return opts
}

// TranslateKey maps a local option key to its display name, passing
// unrecognized keys through unchanged.
func (o Options) TranslateKey(key string) string {
	if name, ok := o.NameByKey()[key]; ok {
		return name
	}
	return key
}

// TranslateName maps a display name back to its local option key,
// passing unrecognized names through unchanged.
func (o Options) TranslateName(name string) string {
	if key, ok := o.KeyByName()[name]; ok {
		return key
	}
	return name
}
