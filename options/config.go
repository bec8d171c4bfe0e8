package options

import (
	"fmt"
	"os"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"
	"github.com/samber/lo"
	"github.com/signadot/objdoc/ir"
	"github.com/signadot/objdoc/value"
)

// Config is the file form of Options.
//
//	valueNodeType: attribute
//	prettyPrintXml: true
//	namespaces:
//	  xsi: http://www.w3.org/2001/XMLSchema-instance
//	friendlyMessages:
//	  integer: must be a whole number
//	rules:
//	- when: Name == "Password" && HasText
//	  setText: "***"
type Config struct {
	DefaultNamespace                 string            `yaml:"defaultNamespace"`
	ValueNodeType                    string            `yaml:"valueNodeType"`
	PrettyPrintXML                   bool              `yaml:"prettyPrintXml"`
	PrettyPrintJSON                  bool              `yaml:"prettyPrintJson"`
	ExcludeNullValues                bool              `yaml:"excludeNullValues"`
	GenericTypeFormat                string            `yaml:"genericTypeFormat"`
	GenericListFormat                string            `yaml:"genericListFormat"`
	Namespaces                       map[string]string `yaml:"namespaces"`
	IgnoreUnmatchedNodes             bool              `yaml:"ignoreUnmatchedNodes"`
	DefaultNonNullableTypesWhenEmpty bool              `yaml:"defaultNonNullableTypesWhenEmpty"`
	FriendlyMessages                 map[string]string `yaml:"friendlyMessages"`
	Rules                            []Rule            `yaml:"rules"`
}

// Rule is a NodeWriter described by an expression. When the boolean
// expression When holds for a node, SetText replaces the text of a value
// node and Attributes are added to an XML element.
type Rule struct {
	When       string            `yaml:"when"`
	SetText    *string           `yaml:"setText"`
	Attributes map[string]string `yaml:"attributes"`
}

// RuleEnv is the environment rule expressions are evaluated in.
type RuleEnv struct {
	Name    string
	Path    string
	Text    string
	HasText bool
	Kind    string
	Type    string
	Format  string
	IsRoot  bool
	GoType  string
}

func LoadConfig(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(d []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.UnmarshalWithOptions(d, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Options converts the config into options, compiling rule expressions.
func (c *Config) Options() ([]Option, error) {
	var nt NodeType
	if err := nt.UnmarshalText([]byte(c.ValueNodeType)); err != nil {
		return nil, err
	}
	opts := []Option{
		DefaultNamespace(c.DefaultNamespace),
		XMLValueNodeType(nt),
		PrettyPrintXML(c.PrettyPrintXML),
		PrettyPrintJSON(c.PrettyPrintJSON),
		ExcludeNullValues(c.ExcludeNullValues),
		IgnoreUnmatchedNodes(c.IgnoreUnmatchedNodes),
		DefaultNonNullableTypesWhenEmpty(c.DefaultNonNullableTypesWhenEmpty),
	}
	if c.GenericTypeFormat != "" {
		opts = append(opts, GenericTypeXMLNameFormat(c.GenericTypeFormat))
	}
	if c.GenericListFormat != "" {
		opts = append(opts, GenericListXMLNameFormat(c.GenericListFormat))
	}
	for _, prefix := range sortedKeys(c.Namespaces) {
		opts = append(opts, XMLNamespace(prefix, c.Namespaces[prefix]))
	}
	for _, label := range sortedKeys(c.FriendlyMessages) {
		k, err := value.ParseKind(label)
		if err != nil {
			return nil, fmt.Errorf("friendlyMessages: %w", err)
		}
		opts = append(opts, FriendlyParseErrorMessage(k, c.FriendlyMessages[label]))
	}
	for i := range c.Rules {
		fn, err := c.Rules[i].Compile()
		if err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
		opts = append(opts, NodeWriter(fn))
	}
	return opts, nil
}

// Compile turns the rule into a NodeWriterFunc.
func (r *Rule) Compile() (NodeWriterFunc, error) {
	if r.When == "" {
		return nil, fmt.Errorf("rule has no condition")
	}
	prog, err := expr.Compile(r.When, expr.Env(RuleEnv{}), expr.AsBool())
	if err != nil {
		return nil, err
	}
	setText := r.SetText
	attrNames := sortedKeys(r.Attributes)
	attrs := r.Attributes
	return func(ctx *WriterContext) error {
		ok, err := evalRule(prog, ctx)
		if err != nil {
			return fmt.Errorf("rule %q at %s: %w", r.When, ctx.Path, err)
		}
		if !ok {
			return nil
		}
		n := ctx.Node
		if setText != nil && n.IsValue() {
			n.Text = ir.Str(*setText)
			n.Type = ir.StringType
		}
		if n.Format.IsXML() && n.Kind == ir.ElementKind {
			for _, name := range attrNames {
				n.Append(ir.NewAttribute(name, attrs[name]))
			}
		}
		return nil
	}, nil
}

func evalRule(prog *vm.Program, ctx *WriterContext) (bool, error) {
	n := ctx.Node
	text, hasText := n.Value()
	env := RuleEnv{
		Name:    n.LocalName(),
		Path:    ctx.Path,
		Text:    text,
		HasText: hasText,
		Kind:    n.Kind.String(),
		Type:    n.Type.String(),
		Format:  n.Format.String(),
		IsRoot:  ctx.Root,
	}
	if ctx.Value.IsValid() {
		env.GoType = ctx.Value.Type().String()
	}
	out, err := expr.Run(prog, env)
	if err != nil {
		return false, err
	}
	b, _ := out.(bool)
	return b, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
