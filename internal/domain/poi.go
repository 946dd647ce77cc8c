package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// POI is a single mappable place. On disk and on the wire it is a GeoJSON
// Point Feature whose properties carry the attributes below.
type POI struct {
	ID          string
	Name        string
	Category    string
	Description LocalizedText
	Link        string
	Instagram   string
	Photo       string
	Tags        []string
	Location    orb.Point // [lng, lat]
}

// Feature renders the POI as a GeoJSON Feature.
func (p POI) Feature() *geojson.Feature {
	f := geojson.NewFeature(p.Location)
	f.ID = p.ID
	f.Properties["id"] = p.ID
	f.Properties["name"] = p.Name
	f.Properties["category"] = p.Category
	if !p.Description.IsZero() {
		f.Properties["description"] = p.Description.value()
	}
	setOptional(f.Properties, "link", p.Link)
	setOptional(f.Properties, "instagram", p.Instagram)
	setOptional(f.Properties, "photo", p.Photo)
	if len(p.Tags) > 0 {
		tags := make([]interface{}, 0, len(p.Tags))
		for _, t := range p.Tags {
			tags = append(tags, t)
		}
		f.Properties["tags"] = tags
	}
	return f
}

// FeatureCollection renders pois as a FeatureCollection in the given order.
func FeatureCollection(pois []POI) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range pois {
		fc.Append(p.Feature())
	}
	return fc
}

func setOptional(props geojson.Properties, key, value string) {
	if strings.TrimSpace(value) != "" {
		props[key] = value
	}
}

// POIFromFeature reads a POI out of a GeoJSON Feature. The id is taken from
// properties.id, falling back to the feature id.
func POIFromFeature(f *geojson.Feature) (POI, error) {
	if f == nil {
		return POI{}, fmt.Errorf("%w: nil feature", ErrInvalid)
	}
	pt, ok := f.Geometry.(orb.Point)
	if !ok {
		return POI{}, fmt.Errorf("%w: poi geometry must be a Point, got %T", ErrInvalid, f.Geometry)
	}
	props := f.Properties
	p := POI{
		ID:          props.MustString("id", ""),
		Name:        props.MustString("name", ""),
		Category:    props.MustString("category", ""),
		Description: LocalizedFromAny(props["description"]),
		Link:        props.MustString("link", ""),
		Instagram:   props.MustString("instagram", ""),
		Photo:       props.MustString("photo", ""),
		Tags:        stringList(props["tags"]),
		Location:    pt,
	}
	if p.ID == "" && f.ID != nil {
		p.ID = fmt.Sprint(f.ID)
	}
	return p, nil
}

func stringList(v interface{}) []string {
	switch x := v.(type) {
	case []string:
		return x
	case []interface{}:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Validate checks the fields every stored POI needs.
func (p POI) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalid)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category required", ErrInvalid)
	}
	lng, lat := p.Location.Lon(), p.Location.Lat()
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: coordinates out of range [%f,%f]", ErrInvalid, lng, lat)
	}
	if lng == 0 && lat == 0 {
		return fmt.Errorf("%w: coordinates required", ErrInvalid)
	}
	return nil
}

// NewID builds an id from a prefix, the current time and a random suffix.
// Two calls in the same millisecond still differ; identical payloads are not
// deduplicated.
func NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}
