// Package catalog は銘柄コードと名称の静的な対応表を提供します。
// 起動時に一度だけ読み込み、以降は読み取り専用です。
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// EnvKeyFile は埋め込みの対応表を置き換えるYAMLファイルのパスを指定する環境変数です。
const EnvKeyFile = "SYMBOL_CATALOG_FILE"

// ErrEmpty は対応表に銘柄がひとつもないことを示します。
var ErrEmpty = errors.New("catalog has no symbols")

// Entry はひとつの銘柄です。
type Entry struct {
	Code   string `yaml:"code" json:"code"`
	Name   string `yaml:"name" json:"name"`
	Market string `yaml:"market" json:"market"`
}

type document struct {
	Symbols []Entry `yaml:"symbols"`
}

// Catalog は順序付きの銘柄対応表です。
type Catalog struct {
	entries []Entry
	byCode  map[string]int
}

// Parse はYAMLから対応表を作ります。コードの重複は後勝ちではなくエラーです。
func Parse(b []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Symbols) == 0 {
		return nil, ErrEmpty
	}

	c := &Catalog{
		entries: make([]Entry, 0, len(doc.Symbols)),
		byCode:  make(map[string]int, len(doc.Symbols)),
	}
	for i, e := range doc.Symbols {
		e.Code = strings.TrimSpace(e.Code)
		e.Name = strings.TrimSpace(e.Name)
		if e.Code == "" || e.Name == "" {
			return nil, fmt.Errorf("parse catalog: entry %d: code and name are required", i)
		}
		if _, dup := c.byCode[e.Code]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate code %q", e.Code)
		}
		c.byCode[e.Code] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Default は埋め込みの対応表を返します。
func Default() *Catalog {
	c, err := Parse(embedded)
	if err != nil {
		panic(err)
	}
	return c
}

// Load はpathのYAMLを読み込みます。pathが空なら埋め込みの対応表を使います。
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

// LoadFromEnv はSYMBOL_CATALOG_FILEに従って対応表を読み込みます。
func LoadFromEnv() (*Catalog, error) {
	return Load(os.Getenv(EnvKeyFile))
}

// Len は銘柄数を返します。
func (c *Catalog) Len() int { return len(c.entries) }

// Name はcodeの名称を返します。
func (c *Catalog) Name(code string) (string, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return "", false
	}
	return c.entries[i].Name, true
}

// All は全銘柄を表示順で返します。戻り値は複製です。
func (c *Catalog) All() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Search はコードの前方一致または名称の部分一致で検索します。
// limitが0以下なら件数を制限しません。
func (c *Catalog) Search(q string, limit int) []Entry {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return []Entry{}
	}
	out := []Entry{}
	for _, e := range c.entries {
		if strings.HasPrefix(strings.ToLower(e.Code), q) || strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}
