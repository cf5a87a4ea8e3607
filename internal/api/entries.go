package api

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"retainer-tracker/internal/domain"
	"retainer-tracker/internal/errors"
	"retainer-tracker/internal/repository/sqlite"
)

// ListEntries retrieves entries matching the filter, enriched with resolved
// names, tags and billed amounts.
func (a *apiImpl) ListEntries(ctx context.Context, filter EntryFilter) ([]*EntryWithDetails, error) {
	opts := sqlite.SearchOptions{
		WorkspaceID: a.workspaceID,
		StartTime:   filter.Start,
		EndTime:     filter.End,
		ProjectID:   filter.ProjectID,
		ClientID:    filter.ClientID,
		Description: filter.Text,
		Limit:       filter.Limit,
	}

	dbEntries, err := a.repo.SearchTimeEntries(ctx, opts)
	if err != nil {
		return nil, err
	}

	projectNames := make(map[string]string)
	clientNames := make(map[string]string)

	results := make([]*EntryWithDetails, 0, len(dbEntries))
	for _, dbEntry := range dbEntries {
		entry := a.mapper.TimeEntry.FromDatabase(*dbEntry)
		detail := &EntryWithDetails{Entry: entry}

		if entry.ProjectID != nil {
			name, err := a.projectName(ctx, projectNames, *entry.ProjectID)
			if err != nil {
				return nil, err
			}
			detail.ProjectName = name
		}
		if entry.ClientID != nil {
			name, err := a.clientName(ctx, clientNames, *entry.ClientID)
			if err != nil {
				return nil, err
			}
			detail.ClientName = name
		}

		dbTags, err := a.repo.TagsForEntry(ctx, entry.ID)
		if err != nil {
			return nil, err
		}
		detail.Tags = a.mapper.Tag.FromDatabaseSlice(dbTags)

		amount, err := a.billing.AmountForEntry(ctx, entry.ID)
		if err != nil {
			return nil, err
		}
		detail.Amount = amount

		results = append(results, detail)
	}
	return results, nil
}

// UpdateEntry applies a partial update to a time entry. Timing fields are
// owned by the timer lifecycle and cannot be edited here.
func (a *apiImpl) UpdateEntry(ctx context.Context, id string, update EntryUpdate) (*domain.TimeEntry, error) {
	if err := a.entryValidator.ValidateEntryID(id); err != nil {
		return nil, errors.NewValidationError("invalid entry ID", err)
	}

	dbEntry, err := a.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	entry := a.mapper.TimeEntry.FromDatabase(*dbEntry)

	if update.Description != nil {
		entry.Description = *update.Description
	}
	if update.ClearProject {
		entry.ProjectID = nil
		entry.ClientID = nil
	} else if update.ProjectID != nil {
		dbProject, err := a.repo.GetProject(ctx, *update.ProjectID)
		if err != nil {
			return nil, err
		}
		entry.ProjectID = update.ProjectID
		entry.ClientID = dbProject.ClientID
	}
	if update.Billable != nil {
		entry.Billable = *update.Billable
	}
	if update.ClearOverride {
		entry.RateOverride = nil
	} else if update.RateOverride != nil {
		entry.RateOverride = update.RateOverride
	}

	updated := a.mapper.TimeEntry.ToDatabase(entry)
	if err := a.repo.UpdateTimeEntry(ctx, &updated); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry deletes a time entry.
func (a *apiImpl) DeleteEntry(ctx context.Context, id string) error {
	if err := a.entryValidator.ValidateEntryID(id); err != nil {
		return errors.NewValidationError("invalid entry ID", err)
	}
	return a.repo.DeleteTimeEntry(ctx, id)
}

var csvHeader = []string{
	"id", "description", "project", "client", "start_time", "end_time",
	"duration_seconds", "billable", "rate", "amount", "currency", "tags",
}

// ExportEntriesCSV streams matching entries as CSV, one row per entry.
func (a *apiImpl) ExportEntriesCSV(ctx context.Context, w io.Writer, filter EntryFilter) error {
	details, err := a.ListEntries(ctx, filter)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, d := range details {
		entry := d.Entry

		endTime := ""
		if entry.EndTime != nil {
			endTime = entry.EndTime.UTC().Format(time.RFC3339)
		}
		duration := ""
		if entry.DurationSeconds != nil {
			duration = fmt.Sprintf("%d", *entry.DurationSeconds)
		}
		rate, amount, currency := "", "", ""
		if d.Amount != nil {
			rate = d.Amount.Rate.String()
			amount = d.Amount.Amount.String()
			currency = d.Amount.Currency
		}
		tagNames := make([]string, len(d.Tags))
		for i, tag := range d.Tags {
			tagNames[i] = tag.Name
		}

		record := []string{
			entry.ID,
			entry.Description,
			d.ProjectName,
			d.ClientName,
			entry.StartTime.UTC().Format(time.RFC3339),
			endTime,
			duration,
			fmt.Sprintf("%t", entry.Billable),
			rate,
			amount,
			currency,
			strings.Join(tagNames, ";"),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (a *apiImpl) projectName(ctx context.Context, cache map[string]string, id string) (string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}
	dbProject, err := a.repo.GetProject(ctx, id)
	if err != nil {
		return "", err
	}
	cache[id] = dbProject.Name
	return dbProject.Name, nil
}

func (a *apiImpl) clientName(ctx context.Context, cache map[string]string, id string) (string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}
	dbClient, err := a.repo.GetClient(ctx, id)
	if err != nil {
		return "", err
	}
	cache[id] = dbClient.Name
	return dbClient.Name, nil
}
