package picker

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/go-drift/picker/pkg/dom"
	"github.com/go-drift/picker/pkg/errors"
)

// Registry is the public entry point for binding pickers to a document.
type Registry struct {
	doc      *dom.Document
	store    *Store
	sync     *Synchronizer
	groups   *GroupCoordinator
	router   *Router
	defaults DefaultsProvider
	logger   *zap.Logger
	metrics  *Metrics

	subscribers []func(Change)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDefaults sets the provider of the lowest configuration layer.
func WithDefaults(p DefaultsProvider) RegistryOption {
	return func(r *Registry) {
		if p != nil {
			r.defaults = p
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics registers the picker collectors on reg instead of a private
// registry.
func WithMetrics(reg prometheus.Registerer) RegistryOption {
	return func(r *Registry) {
		if reg != nil {
			r.metrics = NewMetrics(reg)
		}
	}
}

// WithChangeHandler subscribes fn to change notifications.
func WithChangeHandler(fn func(Change)) RegistryOption {
	return func(r *Registry) {
		r.OnChange(fn)
	}
}

// New returns a Registry for doc.
func New(doc *dom.Document, opts ...RegistryOption) *Registry {
	r := &Registry{
		doc:      doc,
		store:    NewStore(doc),
		sync:     NewSynchronizer(doc),
		groups:   NewGroupCoordinator(),
		defaults: StaticDefaults(DefaultOptions()),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = NewMetrics(prometheus.NewRegistry())
	}
	r.router = &Router{
		doc:     doc,
		sync:    r.sync,
		groups:  r.groups,
		notify:  r.broadcast,
		logger:  r.logger,
		metrics: r.metrics,
	}
	return r
}

// Document returns the document the registry binds to.
func (r *Registry) Document() *dom.Document {
	return r.doc
}

// OnChange subscribes fn to change notifications.
func (r *Registry) OnChange(fn func(Change)) {
	if fn != nil {
		r.subscribers = append(r.subscribers, fn)
	}
}

func (r *Registry) broadcast(c Change) {
	for _, fn := range r.subscribers {
		fn(c)
	}
}

// SetDefaults replaces the defaults used by later Bind calls. Bound
// instances keep their configuration.
func (r *Registry) SetDefaults(o Options) {
	r.defaults = StaticDefaults(o)
}

// Defaults returns the current lowest configuration layer.
func (r *Registry) Defaults() Options {
	return r.defaults.Defaults()
}

// Bind binds input and returns its Instance. Binding an already bound
// input returns the existing Instance unchanged. Inputs that are not
// checkboxes or radios yield nil.
func (r *Registry) Bind(input *html.Node, opts ...Option) *Instance {
	if inst, ok := r.store.Lookup(input); ok {
		return inst
	}
	if !dom.IsCheckable(input) {
		return nil
	}

	element, err := elementOverrides(input)
	if err != nil {
		errors.Report(&errors.PickerError{
			Op:    "picker.Bind",
			Kind:  errors.KindOptions,
			Input: dom.Attr(input, "id"),
			Err:   err,
		})
	}
	resolved := resolveOptions(r.defaults.Defaults(), collect(opts), element)

	inst, created := r.store.bind(input, resolved)
	if !created {
		return inst
	}
	r.groups.add(inst)
	r.router.attach(inst)
	r.sync.Update(inst)
	r.metrics.setBound(r.store.Len())

	r.logger.Debug("picker bound",
		zap.String("id", inst.ID()),
		zap.Stringer("kind", inst.kind),
		zap.String("group", inst.group),
		zap.Bool("toggle", resolved.Toggle),
		zap.Bool("label", inst.label != nil),
	)
	return inst
}

// BindAll binds every checkbox and radio under root, in document order.
func (r *Registry) BindAll(root *html.Node, opts ...Option) []*Instance {
	var out []*Instance
	for _, input := range dom.FindAll(root, dom.IsCheckable) {
		if inst := r.Bind(input, opts...); inst != nil {
			out = append(out, inst)
		}
	}
	return out
}

// Unbind removes the picker from input and restores the markup. Unbound
// inputs are ignored.
func (r *Registry) Unbind(input *html.Node) {
	inst, ok := r.store.Lookup(input)
	if !ok {
		return
	}
	r.groups.remove(inst)
	r.store.unbind(input)
	r.metrics.setBound(r.store.Len())
	r.logger.Debug("picker unbound", zap.String("id", inst.ID()))
}

// Destroy is an alias for Unbind.
func (r *Registry) Destroy(input *html.Node) {
	r.Unbind(input)
}

// Enable clears the disabled state of input and its picker.
func (r *Registry) Enable(input *html.Node) {
	r.setDisabled(input, false)
}

// Disable sets the disabled state of input and its picker.
func (r *Registry) Disable(input *html.Node) {
	r.setDisabled(input, true)
}

func (r *Registry) setDisabled(input *html.Node, disabled bool) {
	inst, ok := r.store.Lookup(input)
	if !ok {
		return
	}
	r.doc.SetDisabled(input, disabled)
	r.sync.Update(inst)
}

// Update re-reads the native state of input and resynchronizes its picker
// without notifying subscribers. A checked radio also clears the rest of
// its group, which may have gone stale the same way.
func (r *Registry) Update(input *html.Node) {
	inst, ok := r.store.Lookup(input)
	if !ok {
		return
	}
	r.sync.Update(inst)
	if inst.kind == KindRadio && inst.checked {
		r.groups.DeselectOthers(inst, r.router.deselect)
	}
}

// UpdateAll resynchronizes every bound picker.
func (r *Registry) UpdateAll() {
	for _, inst := range r.store.All() {
		r.Update(inst.input)
	}
}

// Lookup returns the Instance bound to input.
func (r *Registry) Lookup(input *html.Node) (*Instance, bool) {
	return r.store.Lookup(input)
}

// Instances returns every bound Instance in bind order.
func (r *Registry) Instances() []*Instance {
	return r.store.All()
}

// Group returns the bound members of a radio group in bind order.
func (r *Registry) Group(name string) []*Instance {
	return r.groups.Members(name)
}
