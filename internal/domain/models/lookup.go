package models

// Read-only reference rows. Maintained elsewhere; this backend only
// consumes them as lookup tables.

type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type City struct {
	ID        int64  `json:"id"`
	CountryID int64  `json:"countryId"`
	Name      string `json:"name"`
}

type Supplier struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CountryID int64  `json:"countryId"`
	CityID    int64  `json:"cityId"`
}

type Handler struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type Client struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type Currency struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
