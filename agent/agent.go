package agent

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nstehr/vimy/vimy-rat/ipc"
	"github.com/nstehr/vimy/vimy-rat/model"
	"github.com/nstehr/vimy/vimy-rat/rat"
	"github.com/nstehr/vimy/vimy-rat/rules"
)

// Catalog is the data the agent draws tables from.
type Catalog interface {
	rat.Generator
	Faction(key string) (*model.FactionRecord, error)
	Factions() []*model.FactionRecord
}

// Config holds the defaults shared by every session.
type Config struct {
	Catalog        Catalog
	Filters        *rules.Registry
	Random         rat.Random
	RoleStrictness int
}

// Agent serves table requests for a single client session.
type Agent struct {
	Conn    *ipc.Connection
	Client  string
	Faction *model.FactionRecord
	Year    int

	cfg Config

	mu     sync.Mutex
	tables map[string]*rat.UnitTable
}

func New(conn *ipc.Connection, cfg Config) *Agent {
	if cfg.Random == nil {
		cfg.Random = rat.CryptoRandom()
	}
	return &Agent{Conn: conn, cfg: cfg, tables: make(map[string]*rat.UnitTable)}
}

// Register installs the agent's handlers on its connection.
func (a *Agent) Register() {
	a.Conn.RegisterHandler(ipc.TypeHello, a.HandleHello)
	a.Conn.RegisterHandler(ipc.TypeGenerate, a.HandleGenerate)
	a.Conn.RegisterHandler(ipc.TypeTable, a.HandleTable)
	a.Conn.RegisterHandler(ipc.TypeFormation, a.HandleFormation)
	a.Conn.RegisterHandler(ipc.TypeFactions, a.HandleFactions)
}

// HandleHello records the client name and its default faction and year.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	hello, err := ipc.Decode[ipc.HelloMessage](env)
	if err != nil {
		return nil, err
	}
	var faction *model.FactionRecord
	if hello.Faction != "" {
		if faction, err = a.cfg.Catalog.Faction(hello.Faction); err != nil {
			return nil, err
		}
	}

	a.mu.Lock()
	a.Client = hello.Client
	a.Faction = faction
	a.Year = hello.Year
	a.mu.Unlock()
	a.Conn.Client = hello.Client

	slog.Info("client identified", "client", hello.Client, "faction", hello.Faction, "year", hello.Year)
	return ipc.Reply(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
}

func (a *Agent) HandleGenerate(env ipc.Envelope) (*ipc.Envelope, error) {
	req, err := ipc.Decode[ipc.GenerateRequest](env)
	if err != nil {
		return nil, err
	}
	filter, err := a.cfg.Filters.Resolve(req.Filter)
	if err != nil {
		return nil, err
	}
	table, err := a.table(req.TableQuery)
	if err != nil {
		return nil, err
	}
	units := table.GenerateMany(req.Count, filter)
	slog.Debug("units generated", "client", a.Client, "requested", req.Count, "generated", len(units))
	return ipc.Reply(ipc.TypeUnits, unitsMessage("", units))
}

// HandleTable lists every entry of the requested table.
func (a *Agent) HandleTable(env ipc.Envelope) (*ipc.Envelope, error) {
	q, err := ipc.Decode[ipc.TableQuery](env)
	if err != nil {
		return nil, err
	}
	table, err := a.table(q)
	if err != nil {
		return nil, err
	}
	p := table.Params()
	msg := ipc.TableRowsMessage{
		Year:       p.Year,
		SalvagePct: table.SalvagePct(),
		Rows:       make([]ipc.TableRow, 0, table.NumEntries()),
	}
	if p.Faction != nil {
		msg.Faction = p.Faction.Key()
	}
	for i, n := 0, table.NumEntries(); i < n; i++ {
		msg.Rows = append(msg.Rows, ipc.TableRow{
			Text:    table.EntryText(i),
			Weight:  table.EntryWeight(i),
			BV:      table.BV(i),
			Salvage: table.UnitRecord(i) == nil,
		})
	}
	return ipc.Reply(ipc.TypeTableRows, msg)
}

func (a *Agent) HandleFormation(env ipc.Envelope) (*ipc.Envelope, error) {
	req, err := ipc.Decode[ipc.FormationRequest](env)
	if err != nil {
		return nil, err
	}
	filter, err := a.cfg.Filters.Resolve(req.Filter)
	if err != nil {
		return nil, err
	}
	table, err := a.table(req.TableQuery)
	if err != nil {
		return nil, err
	}
	fm, err := rules.FormationFor(req.Formation, table.Params().Faction)
	if err != nil {
		return nil, err
	}
	units := fm.Generate(table, filter)
	if len(units) < fm.Size {
		slog.Warn("formation short of units", "formation", fm.Name, "size", fm.Size, "generated", len(units))
	}
	return ipc.Reply(ipc.TypeUnits, unitsMessage(fm.Name, units))
}

// HandleFactions lists catalog factions with their name and activity in the
// requested year, or the session year when none is given.
func (a *Agent) HandleFactions(env ipc.Envelope) (*ipc.Envelope, error) {
	req, err := ipc.Decode[ipc.FactionsRequest](env)
	if err != nil {
		return nil, err
	}
	year := req.Year
	if year == 0 {
		a.mu.Lock()
		year = a.Year
		a.mu.Unlock()
	}
	var msg ipc.FactionsMessage
	for _, f := range a.cfg.Catalog.Factions() {
		name := f.Name
		if year != 0 {
			name = f.NameInYear(year)
		}
		msg.Factions = append(msg.Factions, ipc.Faction{
			Key:    f.Key(),
			Name:   name,
			Clan:   f.IsClan(),
			Active: year == 0 || f.IsActiveInYear(year),
		})
	}
	return ipc.Reply(ipc.TypeFactions, msg)
}

// table returns the cached table for q, building it on first use.
func (a *Agent) table(q ipc.TableQuery) (*rat.UnitTable, error) {
	p, err := a.params(q)
	if err != nil {
		return nil, err
	}
	key := paramsKey(p)

	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.tables[key]; ok {
		return t, nil
	}
	t := rat.New(a.cfg.Catalog, p, rat.WithRandom(a.cfg.Random))
	a.tables[key] = t
	slog.Debug("table cached", "client", a.Client, "key", key, "entries", t.NumEntries())
	return t, nil
}

func (a *Agent) params(q ipc.TableQuery) (rat.Params, error) {
	a.mu.Lock()
	faction, year := a.Faction, a.Year
	a.mu.Unlock()

	if q.Faction != "" {
		f, err := a.cfg.Catalog.Faction(q.Faction)
		if err != nil {
			return rat.Params{}, err
		}
		faction = f
	}
	if faction == nil {
		return rat.Params{}, fmt.Errorf("no faction given and none set by hello")
	}
	if q.Year != 0 {
		year = q.Year
	}
	if year == 0 {
		return rat.Params{}, fmt.Errorf("no year given and none set by hello")
	}

	p := rat.Params{
		Faction:        faction,
		UnitType:       q.UnitType,
		Year:           year,
		Rating:         q.Rating,
		NetworkMask:    q.NetworkMask,
		Subtypes:       q.Subtypes,
		Roles:          rules.ExpandRoles(q.Roles),
		RoleStrictness: a.cfg.RoleStrictness,
	}
	if q.RoleStrictness != nil {
		p.RoleStrictness = *q.RoleStrictness
	}
	if q.Deploying != "" {
		d, err := a.cfg.Catalog.Faction(q.Deploying)
		if err != nil {
			return rat.Params{}, fmt.Errorf("deploying faction: %w", err)
		}
		p.Deploying = d
	}
	for _, s := range q.WeightClasses {
		wc, ok := model.ParseWeightClass(s)
		if !ok {
			return rat.Params{}, fmt.Errorf("unknown weight class %q", s)
		}
		p.WeightClasses = append(p.WeightClasses, wc)
	}
	return p, nil
}

func paramsKey(p rat.Params) string {
	deploying := p.Faction.Key()
	if p.Deploying != nil {
		deploying = p.Deploying.Key()
	}
	return fmt.Sprintf("%s/%s/%s/%d/%s/%v/%d/%s/%s/%d",
		p.Faction.Key(), deploying, p.UnitType, p.Year, p.Rating,
		p.WeightClasses, p.NetworkMask,
		strings.Join(p.Subtypes, ","), strings.Join(p.Roles, ","), p.RoleStrictness)
}

func unitsMessage(formation string, units []*model.UnitRecord) ipc.UnitsMessage {
	msg := ipc.UnitsMessage{
		Formation: formation,
		Units:     make([]ipc.Unit, 0, len(units)),
		TotalBV:   rules.TotalBV(units),
	}
	for _, u := range units {
		msg.Units = append(msg.Units, ipc.Unit{
			Name:        u.Name(),
			Type:        u.TypeName(),
			WeightClass: model.WeightClassName(u.WeightClass),
			Roles:       u.Roles,
			BV:          u.BV,
			Tonnage:     u.Tonnage,
		})
	}
	return msg
}
