// Shoprec - Content-Based Product Recommendation Service
// Copyright 2026 The Shoprec Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shoprec/shoprec

package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shoprec/shoprec/internal/models"
)

// Separator is the field delimiter of the interaction feed.
const Separator = ';'

// ParseInteractions reads a `;`-separated interaction feed with a header
// row and returns its records in feed order. Parsing fails fast: the
// first malformed row aborts with an error wrapping ErrInvalidRecord,
// and no partial result is returned.
func ParseInteractions(r io.Reader) ([]models.Interaction, error) {
	cr := csv.NewReader(r)
	cr.Comma = Separator

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty feed, missing header row", ErrInvalidRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrInvalidRecord, err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var out []models.Interaction
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRecord, line, err)
		}

		in, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRecord, line, err)
		}
		out = append(out, in)
	}
}

func validateHeader(header []string) error {
	if len(header) != len(models.InteractionColumns) {
		return fmt.Errorf("%w: header has %d columns, want %d",
			ErrInvalidRecord, len(header), len(models.InteractionColumns))
	}
	for i, want := range models.InteractionColumns {
		if header[i] != want {
			return fmt.Errorf("%w: header column %d is %q, want %q",
				ErrInvalidRecord, i, header[i], want)
		}
	}
	return nil
}

func parseRecord(record []string) (models.Interaction, error) {
	var in models.Interaction
	if len(record) != len(models.InteractionColumns) {
		return in, fmt.Errorf("record has %d fields, want %d", len(record), len(models.InteractionColumns))
	}

	userID, err := strconv.Atoi(record[0])
	if err != nil {
		return in, fmt.Errorf("user_id %q is not an integer", record[0])
	}
	age, err := strconv.Atoi(record[2])
	if err != nil {
		return in, fmt.Errorf("age %q is not an integer", record[2])
	}
	productID, err := strconv.Atoi(record[6])
	if err != nil {
		return in, fmt.Errorf("product_id %q is not an integer", record[6])
	}

	in = models.Interaction{
		UserID:      userID,
		Name:        record[1],
		Age:         age,
		Gender:      record[3],
		Location:    record[4],
		Preferences: record[5],
		ProductID:   productID,
		Category:    record[7],
		ProductName: record[8],
		Description: record[9],
		Tags:        record[10],
	}
	return in, nil
}

// WriteInteractions writes records as a `;`-separated feed with a header
// row, the inverse of ParseInteractions.
func WriteInteractions(w io.Writer, interactions []models.Interaction) error {
	cw := csv.NewWriter(w)
	cw.Comma = Separator

	if err := cw.Write(models.InteractionColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, in := range interactions {
		record := []string{
			strconv.Itoa(in.UserID),
			in.Name,
			strconv.Itoa(in.Age),
			in.Gender,
			in.Location,
			in.Preferences,
			strconv.Itoa(in.ProductID),
			in.Category,
			in.ProductName,
			in.Description,
			in.Tags,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing record for user %d: %w", in.UserID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
