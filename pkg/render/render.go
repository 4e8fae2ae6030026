package render

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/netloom/netloom/pkg/model"
	"github.com/netloom/netloom/pkg/types"
	"github.com/netloom/netloom/pkg/wgkey"
)

// all: is required so that _helpers.tmpl is embedded; plain directory
// embedding skips names starting with underscore or dot.
//
//go:embed all:templates
var builtinTemplates embed.FS

const templateSuffix string = ".tmpl"
const helpersFileName string = "_helpers" + templateSuffix

// Artifact is one generated output unit for one node.
type Artifact struct {
	RelPath string
	Content []byte
}

// Context is the complete set of inputs a template can reference. Node and
// Topology are always set; the entity fields are set only for templates that
// fan out per interface, VLAN, tunnel or bridge.
type Context struct {
	Node     *model.Node
	Topology *model.NetworkModel
	Iface    *model.Interface
	VLAN     *model.VLAN
	Tunnel   *model.Tunnel
	Bridge   *model.Bridge
}

type TemplateSet struct {
	Name      string
	Templates []*NodeTemplate
}

type NodeTemplate struct {
	ID     string
	parsed *template.Template
}

// Renderer holds the loaded template sets. Construct one per invocation;
// it keeps no per-node state.
type Renderer struct {
	sets  map[string]*TemplateSet
	funcs template.FuncMap
}

func helperFuncs() template.FuncMap {
	return template.FuncMap{
		"join":    strings.Join,
		"wgpub":   wgkey.PublicKey,
		"nftrule": nftRule,
		"ipaddr":  hostAddress,
	}
}

// hostAddress strips the prefix length from a CIDR-style address.
func hostAddress(addr string) string {
	if i := strings.IndexByte(addr, '/'); i >= 0 {
		return addr[:i]
	}
	return addr
}

// NewRenderer loads the built-in template sets.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		sets:  map[string]*TemplateSet{},
		funcs: helperFuncs(),
	}
	sub, err := fs.Sub(builtinTemplates, "templates")
	if err != nil {
		return nil, err
	}
	if err := r.loadFS(sub); err != nil {
		return nil, fmt.Errorf("load builtin templates: %w", err)
	}
	return r, nil
}

// LoadDir adds template sets from a directory; each subdirectory is one set.
// Sets with the same name replace built-in sets entirely.
func (r *Renderer) LoadDir(dir string) error {
	return r.loadFS(os.DirFS(dir))
}

func (r *Renderer) loadFS(fsys fs.FS) error {
	helpers := ""
	buf, err := fs.ReadFile(fsys, helpersFileName)
	switch {
	case err == nil:
		helpers = string(buf)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("read shared helpers: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		set := &TemplateSet{Name: entry.Name()}
		files, err := fs.ReadDir(fsys, entry.Name())
		if err != nil {
			return err
		}
		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), templateSuffix) {
				continue
			}
			buf, err := fs.ReadFile(fsys, path.Join(entry.Name(), file.Name()))
			if err != nil {
				return err
			}
			id := strings.TrimSuffix(file.Name(), templateSuffix)
			tpl := template.New(id).Funcs(r.funcs)
			if helpers != "" {
				if _, err := tpl.Parse(helpers); err != nil {
					return fmt.Errorf("parse shared helpers for %s/%s: %w", set.Name, id, err)
				}
			}
			if _, err := tpl.Parse(string(buf)); err != nil {
				return fmt.Errorf("parse template %s/%s: %w", set.Name, id, err)
			}
			set.Templates = append(set.Templates, &NodeTemplate{ID: id, parsed: tpl})
		}
		sort.Slice(set.Templates, func(i, j int) bool {
			return set.Templates[i].ID < set.Templates[j].ID
		})
		r.sets[set.Name] = set
	}
	return nil
}

func (r *Renderer) SetNames() []string {
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RenderTopology renders all nodes. Failures are isolated per (node,
// template) pair: unaffected artifacts are still produced and the collected
// errors are returned together as a *types.RenderErrors.
func (r *Renderer) RenderTopology(nm *model.NetworkModel, baseSet string) (map[string][]*Artifact, error) {
	all := map[string][]*Artifact{}
	collected := []*types.TemplateError{}
	for _, node := range nm.Nodes {
		artifacts, errs := r.RenderNode(node, nm, SelectSets(node, baseSet))
		all[node.Name] = artifacts
		collected = append(collected, errs...)
	}
	if len(collected) > 0 {
		return all, &types.RenderErrors{Errors: collected}
	}
	return all, nil
}

// RenderNode renders the activated template sets for one node. Artifacts are
// ordered; when a later set targets an already generated path, the later
// content replaces the earlier one in place.
func (r *Renderer) RenderNode(node *model.Node, nm *model.NetworkModel, sets []string) ([]*Artifact, []*types.TemplateError) {
	artifacts := []*Artifact{}
	index := map[string]int{}
	terrs := []*types.TemplateError{}

	emit := func(relPath string, content []byte) {
		if i, ok := index[relPath]; ok {
			artifacts[i].Content = content
			return
		}
		index[relPath] = len(artifacts)
		artifacts = append(artifacts, &Artifact{RelPath: relPath, Content: content})
	}

	for _, setName := range sets {
		set, ok := r.sets[setName]
		if !ok {
			terrs = append(terrs, &types.TemplateError{
				NodeName: node.Name,
				Set:      setName,
				Err:      fmt.Errorf("unknown template set"),
			})
			continue
		}
		for _, tpl := range set.Templates {
			for _, ctx := range expandContexts(tpl.ID, node, nm) {
				content, err := execute(tpl, ctx)
				if err != nil {
					terrs = append(terrs, &types.TemplateError{
						NodeName: node.Name,
						Set:      setName,
						Template: tpl.ID,
						Err:      err,
					})
					continue
				}
				if len(strings.TrimSpace(string(content))) == 0 {
					continue
				}
				relPath, ok := OutputPath(tpl.ID, entityName(ctx))
				if !ok {
					terrs = append(terrs, &types.TemplateError{
						NodeName: node.Name,
						Set:      setName,
						Template: tpl.ID,
						Err:      fmt.Errorf("no output path mapping"),
					})
					continue
				}
				emit(relPath, content)
			}
		}
	}

	if services := ServicesList(node); len(services) > 0 {
		relPath, _ := OutputPath("services.list", "")
		emit(relPath, []byte(strings.Join(services, "\n")+"\n"))
	}

	return artifacts, terrs
}

// expandContexts fans a template out over its logical entities. An entity
// with configured=false yields no context: its artifacts are skipped while
// its identity stays valid for everyone else.
func expandContexts(templateID string, node *model.Node, nm *model.NetworkModel) []*Context {
	base := Context{Node: node, Topology: nm}
	contexts := []*Context{}

	switch {
	case strings.HasPrefix(templateID, "bridge-port"):
		if node.Bridge == nil || !node.Bridge.Configured {
			return nil
		}
		for _, iface := range node.Interfaces {
			ctx := base
			ctx.Iface = iface
			ctx.Bridge = node.Bridge
			contexts = append(contexts, &ctx)
		}
	case strings.HasPrefix(templateID, "vlan-parent"):
		for _, parent := range node.VLANParents() {
			iface, _ := node.InterfaceByName(parent)
			ctx := base
			ctx.Iface = iface
			contexts = append(contexts, &ctx)
		}
	case strings.HasPrefix(templateID, "interface."):
		for _, iface := range node.Interfaces {
			if !iface.Configured {
				continue
			}
			ctx := base
			ctx.Iface = iface
			contexts = append(contexts, &ctx)
		}
	case strings.HasPrefix(templateID, "vlan."):
		for _, vlan := range node.VLANs {
			ctx := base
			ctx.VLAN = vlan
			contexts = append(contexts, &ctx)
		}
	case strings.HasPrefix(templateID, "tunnel."):
		for _, tun := range node.Tunnels {
			ctx := base
			ctx.Tunnel = tun
			contexts = append(contexts, &ctx)
		}
	case strings.HasPrefix(templateID, "bridge."):
		if node.Bridge == nil || !node.Bridge.Configured {
			return nil
		}
		ctx := base
		ctx.Bridge = node.Bridge
		contexts = append(contexts, &ctx)
	default:
		contexts = append(contexts, &base)
	}
	return contexts
}

func entityName(ctx *Context) string {
	switch {
	case ctx.VLAN != nil:
		return ctx.VLAN.Name
	case ctx.Tunnel != nil:
		return ctx.Tunnel.Name
	case ctx.Iface != nil:
		return ctx.Iface.Name
	case ctx.Bridge != nil:
		return ctx.Bridge.Name
	}
	return ""
}

func execute(tpl *NodeTemplate, ctx *Context) ([]byte, error) {
	writer := new(strings.Builder)
	if err := tpl.parsed.Execute(writer, ctx); err != nil {
		return nil, err
	}
	return []byte(writer.String()), nil
}
