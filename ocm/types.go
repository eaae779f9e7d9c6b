package ocm

// Open Charge Map POI payload, compact form. Only the fields the service
// reads are declared; everything else in the upstream document is ignored.
// Pointer fields distinguish absent values from zero values.

type POI struct {
	ID             int          `json:"ID"`
	AddressInfo    *Address     `json:"AddressInfo"`
	Connections    []Connection `json:"Connections"`
	StatusType     *StatusType  `json:"StatusType"`
	OperatorInfo   *Operator    `json:"OperatorInfo"`
	UsageCost      string       `json:"UsageCost"`
	NumberOfPoints *int         `json:"NumberOfPoints"`
}

type Address struct {
	Title        string   `json:"Title"`
	AddressLine1 string   `json:"AddressLine1"`
	Town         string   `json:"Town"`
	Latitude     *float64 `json:"Latitude"`
	Longitude    *float64 `json:"Longitude"`
	Distance     *float64 `json:"Distance"`
}

type Connection struct {
	ConnectionType *ConnectionType `json:"ConnectionType"`
	PowerKW        *float64        `json:"PowerKW"`
	Level          *Level          `json:"Level"`
	Quantity       *int            `json:"Quantity"`
}

type ConnectionType struct {
	Title string `json:"Title"`
}

type Level struct {
	Title string `json:"Title"`
}

type StatusType struct {
	Title string `json:"Title"`
}

type Operator struct {
	Title string `json:"Title"`
}
