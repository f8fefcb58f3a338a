package ipc

// Message type constants shared by the socket and websocket transports.
const (
	TypeHello     = "hello"
	TypeAck       = "ack"
	TypeError     = "error"
	TypeGenerate  = "generate"
	TypeUnits     = "units"
	TypeTable     = "table"
	TypeTableRows = "table_rows"
	TypeFormation = "formation"
	TypeFactions  = "factions"
)

// HelloMessage identifies the client and sets session defaults.
type HelloMessage struct {
	Client  string `json:"client"`
	Faction string `json:"faction,omitempty"`
	Year    int    `json:"year,omitempty"`
}

type AckMessage struct {
	Status string `json:"status"`
}

type ErrorMessage struct {
	Error string `json:"error"`
}

// TableQuery selects a random assignment table. Faction and Year fall back
// to the session defaults from the hello message.
type TableQuery struct {
	Faction        string   `json:"faction,omitempty"`
	Deploying      string   `json:"deploying,omitempty"`
	UnitType       string   `json:"unitType"`
	Year           int      `json:"year,omitempty"`
	Rating         string   `json:"rating,omitempty"`
	WeightClasses  []string `json:"weightClasses,omitempty"`
	NetworkMask    int      `json:"networkMask,omitempty"`
	Subtypes       []string `json:"subtypes,omitempty"`
	Roles          []string `json:"roles,omitempty"`
	RoleStrictness *int     `json:"roleStrictness,omitempty"`
}

// GenerateRequest draws Count units from a table. Filter is a named filter,
// several names joined by "+", or an inline expression.
type GenerateRequest struct {
	TableQuery
	Count  int    `json:"count"`
	Filter string `json:"filter,omitempty"`
}

// FormationRequest draws a standard formation. An empty Formation picks the
// faction's default.
type FormationRequest struct {
	TableQuery
	Formation string `json:"formation,omitempty"`
	Filter    string `json:"filter,omitempty"`
}

type Unit struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	WeightClass string   `json:"weightClass"`
	Roles       []string `json:"roles,omitempty"`
	BV          int      `json:"bv"`
	Tonnage     float64  `json:"tonnage"`
}

type UnitsMessage struct {
	Formation string `json:"formation,omitempty"`
	Units     []Unit `json:"units"`
	TotalBV   int    `json:"totalBv"`
}

// TableRow mirrors one displayed table entry.
type TableRow struct {
	Text    string `json:"text"`
	Weight  int    `json:"weight"`
	BV      int    `json:"bv"`
	Salvage bool   `json:"salvage,omitempty"`
}

type TableRowsMessage struct {
	Faction    string     `json:"faction"`
	Year       int        `json:"year"`
	SalvagePct int        `json:"salvagePct"`
	Rows       []TableRow `json:"rows"`
}

type Faction struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Clan   bool   `json:"clan,omitempty"`
	Active bool   `json:"active"`
}

type FactionsRequest struct {
	Year int `json:"year,omitempty"`
}

type FactionsMessage struct {
	Factions []Faction `json:"factions"`
}
