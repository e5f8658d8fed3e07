// Package config loads named server profiles from a YAML file.
//
//	default: prod
//	profiles:
//	  prod:
//	    url: https://nms.example.com/opennms
//	    apiVersion: 2
//	    timeout: 30s
//	    headers:
//	      Authorization: Basic YWRtaW46YWRtaW4=
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"gopkg.in/yaml.v3"

	"github.com/mhuot/go-opennms/pkg/client"
	"github.com/mhuot/go-opennms/pkg/filter"
)

// ErrUnknownProfile is returned when a profile name is not in the file.
var ErrUnknownProfile = errors.New("config: unknown profile")

// Profile describes one OpenNMS server.
type Profile struct {
	URL        string            `yaml:"url" validate:"required,url"`
	APIVersion int               `yaml:"apiVersion,omitempty" validate:"omitempty,oneof=1 2"`
	Timeout    time.Duration     `yaml:"timeout,omitempty" validate:"gte=0"`
	Headers    map[string]string `yaml:"headers,omitempty" validate:"omitempty,dive,keys,required,endkeys"`
}

// File is the decoded profile file.
type File struct {
	Default  string             `yaml:"default,omitempty"`
	Profiles map[string]Profile `yaml:"profiles" validate:"required,min=1,dive"`
}

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
}

// DefaultPath returns $XDG_CONFIG_HOME/onms/config.yaml or its home-directory equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "onms", "config.yaml")
}

// Load reads and validates the profile file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a profile file. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("config: parse YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every profile and that the default names an existing one.
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("config: invalid profile file: %w", translate(err))
	}
	if f.Default != "" {
		if _, ok := f.Profiles[f.Default]; !ok {
			return fmt.Errorf("%w %q named as default", ErrUnknownProfile, f.Default)
		}
	}
	return nil
}

// Profile returns the named profile, or the default when name is empty.
// A file with a single profile and no default uses that profile.
func (f *File) Profile(name string) (Profile, error) {
	if name == "" {
		name = f.Default
	}
	if name == "" && len(f.Profiles) == 1 {
		for _, p := range f.Profiles {
			return p, nil
		}
	}
	p, ok := f.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w %q (have %s)", ErrUnknownProfile, name, strings.Join(f.Names(), ", "))
	}
	return p, nil
}

// Names returns the profile names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Profiles))
	for name := range f.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Version returns the profile's API version, v2 when unset.
func (p Profile) Version() filter.APIVersion {
	if p.APIVersion == 1 {
		return filter.V1
	}
	return filter.V2
}

// ClientOptions converts the profile into client options.
func (p Profile) ClientOptions() []client.ClientOption {
	opts := []client.ClientOption{
		client.WithBaseURL(p.URL),
		client.WithAPIVersion(p.Version()),
		client.WithTimeout(p.Timeout),
	}
	keys := make([]string, 0, len(p.Headers))
	for k := range p.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		opts = append(opts, client.WithDefaultHeader(k, p.Headers[k]))
	}
	return opts
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Translate(trans)))
	}
	return errors.New(strings.Join(msgs, "; "))
}
