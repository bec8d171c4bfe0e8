package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/objdoc/encode"
	"github.com/signadot/objdoc/format"
	"github.com/signadot/objdoc/ir"
	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

// dump renders n compactly: Name[@attr=v]{children} or Name=text.
func dump(n *ir.Node) string {
	b := &strings.Builder{}
	var rec func(n *ir.Node)
	rec = func(n *ir.Node) {
		b.WriteString(n.Name)
		for _, a := range n.Attributes {
			b.WriteString("[@" + a.Name + "=" + *a.Text + "]")
		}
		if len(n.Children) != 0 || n.Type == ir.ObjectType || n.Type == ir.ArrayType {
			b.WriteString("<" + strings.ToLower(n.Type.String()) + ">{")
			for i, c := range n.Children {
				if i > 0 {
					b.WriteByte(',')
				}
				rec(c)
			}
			b.WriteByte('}')
			return
		}
		b.WriteString("<" + strings.ToLower(n.Type.String()) + ">")
		if n.Text == nil {
			b.WriteString("=<null>")
			return
		}
		b.WriteString("=" + *n.Text)
	}
	rec(n)
	return b.String()
}

func TestParseXML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "values",
			in:   `<Person Age="31"><Name>Ann</Name><Nick></Nick><Work/><Home /></Person>`,
			want: "Person[@Age=31]<object>{Name<string>=Ann,Nick<string>=,Work<null>=<null>,Home<null>=<null>}",
		},
		{
			name: "whitespace between children",
			in:   "<?xml version=\"1.0\"?>\n<!-- c -->\n<A>\n  <B> x </B>\n  <C>\n  </C>\n</A>\n",
			want: "A<object>{B<string>= x ,C<string>=\n  }",
		},
		{
			name: "escapes and cdata",
			in:   `<A>&lt;b&gt; &amp; <![CDATA[<raw>]]></A>`,
			want: "A<string>=<b> & <raw>",
		},
		{
			name: "prefixed names",
			in:   `<p:A xmlns:p="urn:p" p:x="1"><p:B>t</p:B></p:A>`,
			want: "p:A[@p:x=1]<object>{p:B<string>=t}",
		},
		{
			name: "self closing with attributes",
			in:   `<A b="1"/>`,
			want: "A[@b=1]<object>{}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if got := dump(n); got != tt.want {
				t.Errorf("got\n  %s\nwant\n  %s", got, tt.want)
			}
		})
	}
}

func TestParseXMLNamespaces(t *testing.T) {
	n := MustParse([]byte(`<A xmlns="urn:a" xmlns:x="urn:x"><B/><C xmlns="urn:c"><D/></C></A>`))
	if n.Namespace != "urn:a" {
		t.Errorf("root namespace %q", n.Namespace)
	}
	if diff := cmp.Diff([]ir.Namespace{{Prefix: "x", URI: "urn:x"}}, n.Namespaces); diff != "" {
		t.Errorf("namespaces (-want +got):\n%s", diff)
	}
	got := []string{n.Children[0].Namespace, n.Children[1].Namespace, n.Children[1].Children[0].Namespace}
	if diff := cmp.Diff([]string{"urn:a", "urn:c", "urn:c"}, got); diff != "" {
		t.Errorf("scoped namespaces (-want +got):\n%s", diff)
	}
	if len(n.Attributes) != 0 {
		t.Errorf("xmlns declarations should not be attributes")
	}
}

func TestParseXMLErrors(t *testing.T) {
	for _, in := range []string{
		``,
		`<A>`,
		`<A></B>`,
		`<A/><B/>`,
		`text<A/>`,
		`<A x="1" x="2"/>`,
	} {
		_, err := Parse([]byte(in))
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected parse error, got %v", in, err)
		}
		var se *SyntaxError
		if errors.As(err, &se) && se.Format != format.XMLFormat {
			t.Errorf("%q: format %s", in, se.Format)
		}
	}
}

func TestParseJSON(t *testing.T) {
	in := `{"Name":"Ann","Age":31,"Ratio":1.5e3,"Active":false,"Work":null,"Tags":["a",2,[]],"Home":{},"":"blank"}`
	n, err := Parse([]byte(in), ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	want := "root<object>{Name<string>=Ann,Age<number>=31,Ratio<number>=1.5e3,Active<bool>=false,Work<null>=<null>," +
		"Tags<array>{item<string>=a,item<number>=2,item<array>{}},Home<object>{},<string>=blank}"
	if got := dump(n); got != want {
		t.Errorf("got\n  %s\nwant\n  %s", got, want)
	}
	if n.Format != format.JSONFormat || n.Children[5].Children[0].Format != format.JSONFormat {
		t.Error("nodes should carry the JSON format")
	}
}

func TestParseJSONErrors(t *testing.T) {
	for _, in := range []string{``, `{`, `{"a":}`, `[1,2`, `{} {}`, `tru`} {
		_, err := Parse([]byte(in), ParseJSON())
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected parse error, got %v", in, err)
		}
	}
}

func TestByteOrderMarks(t *testing.T) {
	utf8 := append([]byte{0xEF, 0xBB, 0xBF}, `<A>é</A>`...)
	n, err := Parse(utf8)
	if err != nil {
		t.Fatal(err)
	}
	if got := dump(n); got != "A<string>=é" {
		t.Errorf("utf-8 bom: %s", got)
	}

	enc := xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM).NewEncoder()
	utf16, err := enc.Bytes([]byte(`<?xml version="1.0" encoding="utf-16"?><A>é</A>`))
	if err != nil {
		t.Fatal(err)
	}
	n, err = Parse(utf16)
	if err != nil {
		t.Fatal(err)
	}
	if got := dump(n); got != "A<string>=é" {
		t.Errorf("utf-16 bom: %s", got)
	}

	n, err = Parse(append([]byte{0xEF, 0xBB, 0xBF}, `{"a":1}`...), ParseJSON())
	if err != nil {
		t.Fatal(err)
	}
	if got := dump(n); got != "root<object>{a<number>=1}" {
		t.Errorf("json bom: %s", got)
	}
}

func TestDeclaredCharset(t *testing.T) {
	body, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><A><B>é</B><C/></A>`))
	if err != nil {
		t.Fatal(err)
	}
	n, err := Parse(body)
	if err != nil {
		t.Fatal(err)
	}
	if got := dump(n); got != "A<object>{B<string>=é,C<null>=<null>}" {
		t.Errorf("got %s", got)
	}
}

func TestEncodeParse(t *testing.T) {
	for _, f := range format.AllFormats() {
		for _, pretty := range []bool{false, true} {
			in := `<R a="1"><S>x</S><E></E><N/><L><I>1</I><I>2</I></L></R>`
			opts := []ParseOption{}
			if f.IsJSON() {
				in = `{"S":"x","E":"","N":null,"L":[1,2],"O":{"P":true}}`
				opts = append(opts, ParseJSON())
			}
			n := MustParse([]byte(in), opts...)
			text := encode.MustString(n, encode.EncodePretty(pretty))
			back, err := Parse([]byte(text), opts...)
			if err != nil {
				t.Fatalf("%s: %v\n%s", f, err, text)
			}
			if !ir.Equal(n, back) {
				t.Errorf("%s pretty=%t: %s != %s", f, pretty, dump(n), dump(back))
			}
		}
	}
}
