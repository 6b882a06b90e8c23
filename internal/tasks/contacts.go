package tasks

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
)

const opSortContacts = "sort contacts"

type contact struct {
	raw       json.RawMessage
	lastName  string
	firstName string
}

// SortContacts orders the contact list by (last_name, first_name). Records keep
// all of their fields in their original order; equal keys keep input order.
func (s *Service) SortContacts(_ context.Context) (Result, error) {
	in := s.paths.ContactsFile
	if err := requireFile(opSortContacts, in); err != nil {
		return Result{}, err
	}

	contacts, err := readContacts(in)
	if err != nil {
		return Result{}, err
	}

	sortContacts(contacts)

	out := make([]json.RawMessage, len(contacts))
	for i, c := range contacts {
		out[i] = c.raw
	}

	if err := writeJSON(opSortContacts, s.paths.ContactsOut, out); err != nil {
		return Result{}, err
	}

	return Result{Message: "Contacts sorted successfully."}, nil
}

func sortContacts(contacts []contact) {
	slices.SortStableFunc(contacts, func(a, b contact) int {
		if c := cmp.Compare(a.lastName, b.lastName); c != 0 {
			return c
		}
		return cmp.Compare(a.firstName, b.firstName)
	})
}

func readContacts(path string) ([]contact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, execError(opSortContacts, path, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, parseError(opSortContacts, path, err)
	}
	if records == nil {
		return nil, parseError(opSortContacts, path, errors.New("expected a JSON array of contacts"))
	}

	contacts := make([]contact, 0, len(records))
	for i, raw := range records {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, parseError(opSortContacts, path, fmt.Errorf("record %d: %w", i, err))
		}

		last, err := stringField(fields, "last_name")
		if err != nil {
			return nil, parseError(opSortContacts, path, fmt.Errorf("record %d: %w", i, err))
		}
		first, err := stringField(fields, "first_name")
		if err != nil {
			return nil, parseError(opSortContacts, path, fmt.Errorf("record %d: %w", i, err))
		}

		contacts = append(contacts, contact{raw: raw, lastName: last, firstName: first})
	}

	return contacts, nil
}

func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("missing %q", key)
	}

	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("%q is not a string", key)
	}
	return v, nil
}
