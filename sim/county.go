package sim

import "fmt"

// CountyInfo carries the demographic characteristics the engine reads for a
// county: population drives staff capacity, poverty rate drives proportional
// population allocation.
type CountyInfo struct {
	Name         string
	Population   int
	MedianIncome float64
	PovertyRate  float64 // percent, e.g. 14.2
}

// CountyProvider supplies county characteristics. Implementations backed by
// census source files live outside the engine; the simulation only depends
// on this lookup.
type CountyProvider interface {
	County(name string) (CountyInfo, error)
}

// StaticCounties is a map-backed CountyProvider for fixed scenario data.
type StaticCounties map[string]CountyInfo

// NewStaticCounties builds a provider from county records, failing fast on
// duplicates and on characteristics the capacity model cannot use.
func NewStaticCounties(infos ...CountyInfo) (StaticCounties, error) {
	s := make(StaticCounties, len(infos))
	for _, info := range infos {
		if info.Name == "" {
			return nil, fmt.Errorf("county name must not be empty")
		}
		if _, ok := s[info.Name]; ok {
			return nil, fmt.Errorf("duplicate county %q", info.Name)
		}
		if info.Population <= 0 {
			return nil, fmt.Errorf("county %q population must be positive, got %d", info.Name, info.Population)
		}
		if info.PovertyRate < 0 || info.PovertyRate > 100 {
			return nil, fmt.Errorf("county %q poverty rate %v outside [0,100]", info.Name, info.PovertyRate)
		}
		s[info.Name] = info
	}
	return s, nil
}

// County returns the characteristics for name.
func (s StaticCounties) County(name string) (CountyInfo, error) {
	info, ok := s[name]
	if !ok {
		return CountyInfo{}, fmt.Errorf("unknown county %q", name)
	}
	return info, nil
}
