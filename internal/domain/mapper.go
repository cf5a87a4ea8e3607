package domain

import (
	"github.com/shopspring/decimal"

	"retainer-tracker/internal/repository/sqlite"
)

// parseRate converts a stored decimal string into a decimal value. Rates are
// only ever written from decimal.String(), so an unparseable value is treated
// as absent.
func parseRate(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil
	}
	return &d
}

func formatRate(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// ClientMapper handles conversion between domain and database Client models.
type ClientMapper struct{}

// ToDatabase converts a domain Client to a database Client.
func (m *ClientMapper) ToDatabase(client Client) sqlite.Client {
	return sqlite.Client{
		ID:              client.ID,
		WorkspaceID:     client.WorkspaceID,
		Name:            client.Name,
		Currency:        client.Currency,
		Address:         client.Address,
		Color:           client.Color,
		DefaultRate:     formatRate(client.DefaultRate),
		DefaultBillable: client.DefaultBillable,
		BudgetLimit:     client.BudgetLimit,
	}
}

// FromDatabase converts a database Client to a domain Client.
func (m *ClientMapper) FromDatabase(dbClient sqlite.Client) Client {
	return Client{
		ID:              dbClient.ID,
		WorkspaceID:     dbClient.WorkspaceID,
		Name:            dbClient.Name,
		Currency:        dbClient.Currency,
		Address:         dbClient.Address,
		Color:           dbClient.Color,
		DefaultRate:     parseRate(dbClient.DefaultRate),
		DefaultBillable: dbClient.DefaultBillable,
		BudgetLimit:     dbClient.BudgetLimit,
	}
}

// FromDatabaseSlice converts a slice of database Clients to domain Clients.
func (m *ClientMapper) FromDatabaseSlice(dbClients []*sqlite.Client) []Client {
	clients := make([]Client, len(dbClients))
	for i, c := range dbClients {
		clients[i] = m.FromDatabase(*c)
	}
	return clients
}

// ProjectMapper handles conversion between domain and database Project models.
type ProjectMapper struct{}

// ToDatabase converts a domain Project to a database Project.
func (m *ProjectMapper) ToDatabase(project Project) sqlite.Project {
	return sqlite.Project{
		ID:              project.ID,
		WorkspaceID:     project.WorkspaceID,
		ClientID:        project.ClientID,
		Name:            project.Name,
		Color:           project.Color,
		BudgetLimit:     project.BudgetLimit,
		HourlyRate:      formatRate(project.HourlyRate),
		DefaultBillable: project.DefaultBillable,
		IsFavorite:      project.IsFavorite,
		IsArchived:      project.IsArchived,
	}
}

// FromDatabase converts a database Project to a domain Project.
func (m *ProjectMapper) FromDatabase(dbProject sqlite.Project) Project {
	return Project{
		ID:              dbProject.ID,
		WorkspaceID:     dbProject.WorkspaceID,
		ClientID:        dbProject.ClientID,
		Name:            dbProject.Name,
		Color:           dbProject.Color,
		BudgetLimit:     dbProject.BudgetLimit,
		HourlyRate:      parseRate(dbProject.HourlyRate),
		DefaultBillable: dbProject.DefaultBillable,
		IsFavorite:      dbProject.IsFavorite,
		IsArchived:      dbProject.IsArchived,
	}
}

// FromDatabaseSlice converts a slice of database Projects to domain Projects.
func (m *ProjectMapper) FromDatabaseSlice(dbProjects []*sqlite.Project) []Project {
	projects := make([]Project, len(dbProjects))
	for i, p := range dbProjects {
		projects[i] = m.FromDatabase(*p)
	}
	return projects
}

// TimeEntryMapper handles conversion between domain and database TimeEntry models.
type TimeEntryMapper struct{}

// ToDatabase converts a domain TimeEntry to a database TimeEntry.
func (m *TimeEntryMapper) ToDatabase(entry TimeEntry) sqlite.TimeEntry {
	return sqlite.TimeEntry{
		ID:              entry.ID,
		WorkspaceID:     entry.WorkspaceID,
		ProjectID:       entry.ProjectID,
		ClientID:        entry.ClientID,
		Description:     entry.Description,
		StartTime:       entry.StartTime,
		EndTime:         entry.EndTime,
		PauseStart:      entry.PauseStart,
		PausedSeconds:   entry.PausedSeconds,
		DurationSeconds: entry.DurationSeconds,
		Billable:        entry.Billable,
		RateOverride:    formatRate(entry.RateOverride),
	}
}

// FromDatabase converts a database TimeEntry to a domain TimeEntry.
func (m *TimeEntryMapper) FromDatabase(dbEntry sqlite.TimeEntry) TimeEntry {
	return TimeEntry{
		ID:              dbEntry.ID,
		WorkspaceID:     dbEntry.WorkspaceID,
		ProjectID:       dbEntry.ProjectID,
		ClientID:        dbEntry.ClientID,
		Description:     dbEntry.Description,
		StartTime:       dbEntry.StartTime,
		EndTime:         dbEntry.EndTime,
		PauseStart:      dbEntry.PauseStart,
		PausedSeconds:   dbEntry.PausedSeconds,
		DurationSeconds: dbEntry.DurationSeconds,
		Billable:        dbEntry.Billable,
		RateOverride:    parseRate(dbEntry.RateOverride),
	}
}

// FromDatabaseSlice converts a slice of database TimeEntries to domain TimeEntries.
func (m *TimeEntryMapper) FromDatabaseSlice(dbEntries []*sqlite.TimeEntry) []TimeEntry {
	entries := make([]TimeEntry, len(dbEntries))
	for i, e := range dbEntries {
		entries[i] = m.FromDatabase(*e)
	}
	return entries
}

// InvoiceBlockMapper handles conversion between domain and database InvoiceBlock models.
type InvoiceBlockMapper struct{}

// ToDatabase converts a domain InvoiceBlock to a database InvoiceBlock.
func (m *InvoiceBlockMapper) ToDatabase(block InvoiceBlock) sqlite.InvoiceBlock {
	return sqlite.InvoiceBlock{
		ID:                  block.ID,
		ClientID:            block.ClientID,
		HoursTarget:         block.HoursTarget,
		HoursCarriedForward: block.HoursCarriedForward,
		StartDate:           block.StartDate,
		EndDate:             block.EndDate,
		Status:              string(block.Status),
		Notes:               block.Notes,
	}
}

// FromDatabase converts a database InvoiceBlock to a domain InvoiceBlock.
func (m *InvoiceBlockMapper) FromDatabase(dbBlock sqlite.InvoiceBlock) InvoiceBlock {
	return InvoiceBlock{
		ID:                  dbBlock.ID,
		ClientID:            dbBlock.ClientID,
		HoursTarget:         dbBlock.HoursTarget,
		HoursCarriedForward: dbBlock.HoursCarriedForward,
		StartDate:           dbBlock.StartDate,
		EndDate:             dbBlock.EndDate,
		Status:              BlockStatus(dbBlock.Status),
		Notes:               dbBlock.Notes,
	}
}

// FromDatabaseSlice converts a slice of database InvoiceBlocks to domain InvoiceBlocks.
func (m *InvoiceBlockMapper) FromDatabaseSlice(dbBlocks []*sqlite.InvoiceBlock) []InvoiceBlock {
	blocks := make([]InvoiceBlock, len(dbBlocks))
	for i, b := range dbBlocks {
		blocks[i] = m.FromDatabase(*b)
	}
	return blocks
}

// TagMapper handles conversion between domain and database Tag models.
type TagMapper struct{}

// ToDatabase converts a domain Tag to a database Tag.
func (m *TagMapper) ToDatabase(tag Tag) sqlite.Tag {
	return sqlite.Tag{
		ID:          tag.ID,
		WorkspaceID: tag.WorkspaceID,
		Name:        tag.Name,
		Color:       tag.Color,
		IsSystem:    tag.IsSystem,
	}
}

// FromDatabase converts a database Tag to a domain Tag.
func (m *TagMapper) FromDatabase(dbTag sqlite.Tag) Tag {
	return Tag{
		ID:          dbTag.ID,
		WorkspaceID: dbTag.WorkspaceID,
		Name:        dbTag.Name,
		Color:       dbTag.Color,
		IsSystem:    dbTag.IsSystem,
	}
}

// FromDatabaseSlice converts a slice of database Tags to domain Tags.
func (m *TagMapper) FromDatabaseSlice(dbTags []*sqlite.Tag) []Tag {
	tags := make([]Tag, len(dbTags))
	for i, t := range dbTags {
		tags[i] = m.FromDatabase(*t)
	}
	return tags
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Client       *ClientMapper
	Project      *ProjectMapper
	TimeEntry    *TimeEntryMapper
	InvoiceBlock *InvoiceBlockMapper
	Tag          *TagMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Client:       &ClientMapper{},
		Project:      &ProjectMapper{},
		TimeEntry:    &TimeEntryMapper{},
		InvoiceBlock: &InvoiceBlockMapper{},
		Tag:          &TagMapper{},
	}
}
