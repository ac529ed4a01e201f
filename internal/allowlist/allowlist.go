// Package allowlist holds the emails that always receive the admin role and
// register without a license.
package allowlist

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/cvmaster/internal/models"
	"github.com/goccy/go-yaml"
)

// Admin is one allow-listed administrator. DefaultSecret seeds the
// credential only when none exists yet.
type Admin struct {
	Email         string `yaml:"email"`
	Name          string `yaml:"name"`
	DefaultSecret string `yaml:"default_secret"`
}

// List is an ordered set of admins keyed by normalised email.
type List struct {
	admins []Admin
	index  map[string]int
}

// New normalises the emails and drops later duplicates.
func New(admins ...Admin) *List {
	l := &List{index: make(map[string]int, len(admins))}
	for _, a := range admins {
		a.Email = models.NormalizeEmail(a.Email)
		if a.Email == "" {
			continue
		}
		if _, dup := l.index[a.Email]; dup {
			continue
		}
		l.index[a.Email] = len(l.admins)
		l.admins = append(l.admins, a)
	}
	return l
}

// Default is the built-in list used when no file is configured.
func Default() *List {
	return New(Admin{Email: "admin@cvmaster.com", Name: "Administrador", DefaultSecret: "admin123"})
}

type fileFormat struct {
	Admins []Admin `yaml:"admins"`
}

// LoadFile reads a YAML list:
//
//	admins:
//	  - email: ops@example.com
//	    name: Ops
//	    default_secret: change-me
func LoadFile(path string) (*List, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read admin list: %w", err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse admin list %s: %w", path, err)
	}
	for i, a := range f.Admins {
		if strings.TrimSpace(a.Email) == "" {
			return nil, fmt.Errorf("parse admin list %s: entry %d has no email", path, i)
		}
	}
	return New(f.Admins...), nil
}

// Load returns LoadFile(path), or Default when path is empty.
func Load(path string) (*List, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

func (l *List) Contains(email string) bool {
	_, ok := l.index[models.NormalizeEmail(email)]
	return ok
}

func (l *List) Lookup(email string) (Admin, bool) {
	i, ok := l.index[models.NormalizeEmail(email)]
	if !ok {
		return Admin{}, false
	}
	return l.admins[i], true
}

// Admins returns the admins in declaration order.
func (l *List) Admins() []Admin {
	out := make([]Admin, len(l.admins))
	copy(out, l.admins)
	return out
}
