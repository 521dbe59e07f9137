package objexport

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/rocketmesh/pkg/rocket"
	"github.com/Faultbox/rocketmesh/pkg/wavefront"
)

// Exporter writes a selection of rocket components to OBJ files.
type Exporter struct {
	components []*rocket.Component
	config     *rocket.FlightConfiguration
	path       string
	opts       Options

	fs       billy.Filesystem
	registry *Registry
	log      *zap.Logger
}

// Option customizes an Exporter.
type Option func(*Exporter)

// WithFilesystem sets where output files are created. The export path is
// then interpreted inside fs. Without it files go to the directory of the
// export path on the local disk.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(e *Exporter) { e.fs = fs }
}

// WithRegistry replaces the generator registry.
func WithRegistry(r *Registry) Option {
	return func(e *Exporter) { e.registry = r }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Exporter) { e.log = l }
}

// NewExporter prepares an export of components, as they appear in cfg, to
// the OBJ file at path.
func NewExporter(components []*rocket.Component, cfg *rocket.FlightConfiguration, path string, opts Options, options ...Option) *Exporter {
	e := &Exporter{
		components: components,
		config:     cfg,
		path:       path,
		opts:       opts,
		registry:   DefaultRegistry(),
		log:        zap.NewNop(),
	}
	for _, o := range options {
		o(e)
	}
	if e.fs == nil {
		e.fs = osfs.New(filepath.Dir(path))
		e.path = filepath.Base(path)
	}
	return e
}

// job is one exported component.
type job struct {
	index int
	comp  *rocket.Component
	group string
	gen   Generator

	doc  *wavefront.Document
	mats []wavefront.Material
}

// output is one OBJ file with its materials.
type output struct {
	path string
	doc  *wavefront.Document
	mats []wavefront.Material
}

// Export generates and writes every file. Generators for all selected
// components are resolved before anything is written. Files written before
// an I/O failure are left in place.
func (e *Exporter) Export() error {
	if err := e.opts.Validate(); err != nil {
		return err
	}
	if e.config == nil {
		if len(e.components) == 0 {
			return nil
		}
		root := e.components[0].Root()
		e.config = rocket.NewFlightConfiguration(root, "", "")
	}

	jobs, err := e.plan()
	if err != nil {
		return err
	}

	tf := e.opts.Transformer
	if tf == nil {
		tf = NewCoordTransform(e.config.Length())
	}

	if err := e.generate(jobs, tf); err != nil {
		return err
	}

	for _, out := range e.collect(jobs) {
		if err := e.write(out); err != nil {
			return err
		}
	}
	return nil
}

// plan selects, orders and resolves the components to export.
func (e *Exporter) plan() ([]*job, error) {
	selected := make(map[*rocket.Component]bool)
	for _, c := range e.components {
		selected[c] = true
		if e.opts.ExportChildren {
			for _, d := range c.Descendants() {
				selected[d] = true
			}
		}
	}

	var jobs []*job
	var unsupported error
	e.config.Rocket().Walk(func(c *rocket.Component) bool {
		if unsupported != nil {
			return false
		}
		if !selected[c] || c.Kind.IsAssembly() || !e.config.IsComponentActive(c) {
			return true
		}
		gen, ok := e.registry.Resolve(c.Kind)
		if !ok {
			unsupported = &UnsupportedComponentError{Component: c.Name, Kind: c.Kind}
			return false
		}
		index := len(jobs) + 1
		jobs = append(jobs, &job{
			index: index,
			comp:  c,
			group: strconv.Itoa(index) + "_" + sanitizeName(c.Name),
			gen:   gen,
		})
		return true
	})
	if unsupported != nil {
		return nil, unsupported
	}
	return jobs, nil
}

// generate meshes every job into its own document, in parallel when
// configured.
func (e *Exporter) generate(jobs []*job, tf Transformer) error {
	if e.opts.Workers < 2 {
		for _, j := range jobs {
			if err := e.generateJob(j, tf); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(e.opts.Workers)
	for _, j := range jobs {
		g.Go(func() error {
			return e.generateJob(j, tf)
		})
	}
	return g.Wait()
}

func (e *Exporter) generateJob(j *job, tf Transformer) error {
	j.doc = wavefront.NewDocument()
	req := Request{
		Component:   j.comp,
		Config:      e.config,
		Transformer: tf,
		Group:       j.group,
		LOD:         e.opts.LOD,
	}
	if e.opts.ExportAppearance {
		req.Material = ExportAppearance(&j.mats, j.comp, "mat_"+j.group)
	}

	e.log.Debug("generating component",
		zap.Int("index", j.index),
		zap.String("name", j.comp.Name),
		zap.Stringer("kind", j.comp.Kind),
	)
	if err := j.gen.Generate(j.doc, req); err != nil {
		return fmt.Errorf("generating %s: %w", j.group, err)
	}

	if !j.comp.IsMotorMount() {
		return nil
	}
	motor, ok := e.config.MotorFor(j.comp)
	if !ok {
		return nil
	}
	motorReq := req
	motorReq.Group = j.group + "_motor"
	if e.opts.ExportAppearance {
		name := "mat_" + motorReq.Group
		j.mats = append(j.mats, material(name, &rocket.Appearance{Color: motorColor, Opacity: 1, Shine: 0.3}))
		motorReq.Material = name
	}
	if err := generateMotor(j.doc, motorReq, motor); err != nil {
		return fmt.Errorf("generating motor %s: %w", motor.Designation, err)
	}
	return nil
}

// collect merges job documents into output documents in tree order.
func (e *Exporter) collect(jobs []*job) []*output {
	if e.opts.SeparateFiles {
		outs := make([]*output, len(jobs))
		for i, j := range jobs {
			outs[i] = &output{path: separatePath(e.path, j.group), doc: j.doc, mats: j.mats}
		}
		return outs
	}

	out := &output{path: e.path, doc: wavefront.NewDocument()}
	for _, j := range jobs {
		out.doc.Append(j.doc)
		out.mats = append(out.mats, j.mats...)
	}
	return []*output{out}
}

// write post-processes out and writes its OBJ file, and its MTL file when
// appearance export is enabled.
func (e *Exporter) write(out *output) error {
	doc := out.doc
	if e.opts.Triangulate {
		wavefront.Triangulate(doc)
	}
	if e.opts.RemoveOffset {
		wavefront.RemoveOffset(doc)
	}
	wavefront.Scale(doc, e.opts.Scaling)

	if e.opts.ExportAppearance {
		mtlPath := materialPath(out.path)
		err := e.writeFile(mtlPath, func(w io.Writer) error {
			return wavefront.EncodeMaterials(w, out.mats)
		})
		if err != nil {
			return err
		}
		doc.SetMaterialLibs(filepath.Base(mtlPath))
	}

	err := e.writeFile(out.path, func(w io.Writer) error {
		return wavefront.Encode(w, doc)
	})
	if err != nil {
		return err
	}

	e.log.Info("wrote mesh",
		zap.String("path", out.path),
		zap.Int("vertices", len(doc.Vertices)),
		zap.Int("faces", doc.FaceCount()),
		zap.Int("groups", len(doc.Groups)),
	)
	return nil
}

// writeFile creates (or truncates) name and always closes it.
func (e *Exporter) writeFile(name string, encode func(io.Writer) error) (err error) {
	f, err := e.fs.Create(name)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("write %s: %w", name, cerr)
		}
	}()

	if err := encode(f); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// separatePath derives the per-component file name from the base path.
func separatePath(base, group string) string {
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_" + group + ext
}

// materialPath replaces the extension of an OBJ path with .mtl.
func materialPath(objPath string) string {
	return strings.TrimSuffix(objPath, filepath.Ext(objPath)) + ".mtl"
}

// sanitizeName makes a component name usable as a group and file name.
func sanitizeName(name string) string {
	if name == "" {
		return "component"
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, name)
}
