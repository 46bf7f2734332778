package command

import "sort"

// DefaultRegistry is the global registry; built-in commands add
// themselves from init().
var DefaultRegistry = NewRegistry()

// Registry stores commands by name and alias. It does not perform
// dispatch; the conversation router looks commands up and invokes them
// through Run.
type Registry struct {
	commands map[string]Command
	aliases  map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command and its aliases. Usually called from init().
func (r *Registry) Register(c Command) {
	meta := c.Meta()
	r.commands[meta.Name] = c
	for _, alias := range meta.Aliases {
		r.aliases[alias] = meta.Name
	}
}

// Get returns the command with the given name or alias, or nil.
func (r *Registry) Get(name string) Command {
	if c, ok := r.commands[name]; ok {
		return c
	}
	if canonical, ok := r.aliases[name]; ok {
		return r.commands[canonical]
	}
	return nil
}

// Has reports whether a command with the given name or alias exists.
func (r *Registry) Has(name string) bool {
	return r.Get(name) != nil
}

// All returns every registered command, sorted by name.
func (r *Registry) All() []Command {
	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Meta().Name < list[j].Meta().Name
	})
	return list
}

// Register adds a command to the default registry.
func Register(c Command) {
	DefaultRegistry.Register(c)
}
