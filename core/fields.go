package core

import (
	"context"
	"sort"
	"strings"

	"pkt.systems/jirasoap/schema"
)

// GetCustomFields lists the known custom fields.
func (t *Tracker) GetCustomFields(ctx context.Context, token string) ([]schema.RemoteField, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if err := t.requireAdmin(caller, "list custom fields"); err != nil {
		return nil, err
	}
	return append([]schema.RemoteField{}, t.st.CustomFields...), nil
}

// RefreshCustomFields rebuilds the custom field list from the configured
// fields and every custom field id set on an issue.
func (t *Tracker) RefreshCustomFields(ctx context.Context, token string) error {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller, "refresh custom fields"); err != nil {
		return err
	}
	names := map[string]string{}
	for _, field := range t.cfg.CustomFields {
		names[field.ID] = field.Name
	}
	for _, issue := range t.st.Issues {
		for _, value := range issue.CustomFields {
			if _, ok := names[value.CustomfieldID]; !ok {
				names[value.CustomfieldID] = "Custom field " + strings.TrimPrefix(value.CustomfieldID, customFieldPrefix)
			}
		}
	}
	fields := make([]schema.RemoteField, 0, len(names))
	for id, name := range names {
		fields = append(fields, schema.RemoteField{ID: id, Name: name})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].ID < fields[j].ID })
	t.st.CustomFields = fields
	log.Info("custom fields refreshed", "count", len(fields))
	return nil
}
