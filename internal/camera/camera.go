// Package camera describes the sensor and lens of a survey camera and keeps
// a registry of named profiles.
package camera

import (
	"math"
	"sort"
	"strings"

	"github.com/banshee-data/survey-planner/internal/survey"
)

// Profile identifies a sensor/lens configuration. Linear dimensions are in
// millimetres, image dimensions in pixels.
type Profile struct {
	Name         string  `koanf:"name" json:"name"`
	Description  string  `koanf:"description" json:"description"`
	SensorWidth  float64 `koanf:"sensor_width_mm" json:"sensor_width_mm"`
	SensorHeight float64 `koanf:"sensor_height_mm" json:"sensor_height_mm"`
	FocalLength  float64 `koanf:"focal_length_mm" json:"focal_length_mm"`
	ImageWidth   int     `koanf:"image_width_px" json:"image_width_px"`
	ImageHeight  int     `koanf:"image_height_px" json:"image_height_px"`
}

// FC330 is the 12 MPix camera of the DJI Phantom 4.
var FC330 = Profile{
	Name:         "FC330",
	Description:  "Camera of the DJI Phantom 4 quadcopter",
	SensorWidth:  6.24768,
	SensorHeight: 4.68576,
	FocalLength:  3.61,
	ImageWidth:   4000,
	ImageHeight:  3000,
}

// Validate checks that every dimension is strictly positive and finite.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return survey.InvalidField("camera.name", "must not be empty")
	}
	dims := []struct {
		field string
		v     float64
	}{
		{"sensor_width_mm", p.SensorWidth},
		{"sensor_height_mm", p.SensorHeight},
		{"focal_length_mm", p.FocalLength},
	}
	for _, d := range dims {
		if !(d.v > 0) || math.IsInf(d.v, 0) {
			return survey.InvalidField("camera."+p.Name+"."+d.field, "must be a positive number, got %g", d.v)
		}
	}
	if p.ImageWidth <= 0 {
		return survey.InvalidField("camera."+p.Name+".image_width_px", "must be positive, got %d", p.ImageWidth)
	}
	if p.ImageHeight <= 0 {
		return survey.InvalidField("camera."+p.Name+".image_height_px", "must be positive, got %d", p.ImageHeight)
	}
	return nil
}

// Registry maps profile names (case-insensitive) to profiles.
type Registry struct {
	profiles map[string]Profile
	aliases  map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]Profile),
		aliases:  make(map[string]string),
	}
}

// DefaultRegistry returns a registry holding the built-in profiles. "P4" is
// accepted as an alias for FC330.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Built-ins are known valid.
	_ = r.Register(FC330)
	r.aliases["p4"] = key(FC330.Name)
	return r
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register validates p and adds it. Registering a name that already exists
// (as a profile or alias) is rejected.
func (r *Registry) Register(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	k := key(p.Name)
	if _, ok := r.profiles[k]; ok {
		return survey.InvalidField("camera."+p.Name, "duplicate camera profile")
	}
	if _, ok := r.aliases[k]; ok {
		return survey.InvalidField("camera."+p.Name, "name collides with an alias")
	}
	r.profiles[k] = p
	return nil
}

// Lookup returns the profile registered under name or alias.
func (r *Registry) Lookup(name string) (Profile, error) {
	k := key(name)
	if target, ok := r.aliases[k]; ok {
		k = target
	}
	p, ok := r.profiles[k]
	if !ok {
		return Profile{}, survey.InvalidField("footprint.camera", "unknown camera %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Names returns the registered profile names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for _, p := range r.profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Profiles returns the registered profiles sorted by name.
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, 0, len(r.profiles))
	for _, n := range r.Names() {
		out = append(out, r.profiles[key(n)])
	}
	return out
}
