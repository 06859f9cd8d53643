package registry

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public vPIC API root.
const DefaultBaseURL = "https://vpic.nhtsa.dot.gov/api/vehicles"

type Endpoint struct {
	Name string
	Path string
}

var (
	EndpointManufacturers = Endpoint{Name: "GetAllManufacturers", Path: "GetAllManufacturers/"}
	EndpointMakes         = Endpoint{Name: "GetMakeForManufacturer", Path: "GetMakeForManufacturer/%d"}
	EndpointModels        = Endpoint{Name: "GetModelsForMakeId", Path: "GetModelsForMakeId/%d"}
)

func (e Endpoint) String() string {
	return e.Name
}

// URL builds the request URL under base, filling the path's identifier when
// it has one. The JSON format flag is always set.
func (e Endpoint) URL(base string, id ...any) (string, error) {
	path := e.Path
	if strings.Contains(path, "%") {
		if len(id) == 0 {
			return "", fmt.Errorf("endpoint %s requires an identifier", e.Name)
		}
		path = fmt.Sprintf(path, id...)
	}

	u, err := url.Parse(strings.TrimRight(base, "/") + "/" + path)
	if err != nil {
		return "", fmt.Errorf("invalid url for %s: %w", e.Name, err)
	}
	q := u.Query()
	q.Set("format", "json")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
