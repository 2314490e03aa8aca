// Copyright (C) 2025 RivalSee (hello@botsee.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// resources.go holds the typed wrappers for the site -> customer type ->
// persona -> question resource hierarchy.
//
// Batch generation calls return the full requested batch or an error;
// a partial batch is not a defined success state. Counts reported
// upstream are always taken from the returned array lengths, never from
// the requested count.
package api

import (
	"context"
	"fmt"
)

// -----------------------------------------------------------------------------
// Sites
// -----------------------------------------------------------------------------

// CreateSite registers a new site for the given URL.
func (c *Client) CreateSite(ctx context.Context, url string) (*Site, error) {
	var out struct {
		Site Site `json:"site"`
	}
	if _, err := c.post(ctx, "/sites", map[string]string{"url": url}, &out); err != nil {
		return nil, err
	}
	return &out.Site, nil
}

// ListSites returns all sites on the account.
func (c *Client) ListSites(ctx context.Context) ([]Site, error) {
	var out struct {
		Sites []Site `json:"sites"`
	}
	resp, err := c.get(ctx, "/sites", &out)
	if err != nil {
		return nil, err
	}
	c.noteUpdate(resp)
	return out.Sites, nil
}

// GetSite fetches one site by UUID.
func (c *Client) GetSite(ctx context.Context, uuid string) (*Site, error) {
	var out struct {
		Site Site `json:"site"`
	}
	if _, err := c.get(ctx, "/sites/"+uuid, &out); err != nil {
		return nil, err
	}
	return &out.Site, nil
}

// ArchiveSite soft-deletes a site. Archival is advisory: children are
// neither blocked nor cascaded.
func (c *Client) ArchiveSite(ctx context.Context, uuid string) error {
	_, err := c.del(ctx, "/sites/"+uuid)
	return err
}

// -----------------------------------------------------------------------------
// Customer Types
// -----------------------------------------------------------------------------

// ListCustomerTypes returns the customer types of a site.
func (c *Client) ListCustomerTypes(ctx context.Context, siteUUID string) ([]CustomerType, error) {
	var out struct {
		CustomerTypes []CustomerType `json:"customer_types"`
	}
	if _, err := c.get(ctx, fmt.Sprintf("/sites/%s/customer-types", siteUUID), &out); err != nil {
		return nil, err
	}
	return out.CustomerTypes, nil
}

// GetCustomerType fetches one customer type by UUID.
func (c *Client) GetCustomerType(ctx context.Context, uuid string) (*CustomerType, error) {
	var out struct {
		CustomerType CustomerType `json:"customer_type"`
	}
	if _, err := c.get(ctx, "/customer-types/"+uuid, &out); err != nil {
		return nil, err
	}
	return &out.CustomerType, nil
}

// CreateCustomerType creates a customer type manually. Free of charge.
func (c *Client) CreateCustomerType(ctx context.Context, siteUUID, name, description string) (*CustomerType, error) {
	payload := map[string]string{"name": name}
	if description != "" {
		payload["description"] = description
	}
	var out struct {
		CustomerType CustomerType `json:"customer_type"`
	}
	if _, err := c.post(ctx, fmt.Sprintf("/sites/%s/customer-types", siteUUID), payload, &out); err != nil {
		return nil, err
	}
	return &out.CustomerType, nil
}

// GenerateCustomerTypes AI-generates count customer types as one batched
// call. Priced per generated item.
func (c *Client) GenerateCustomerTypes(ctx context.Context, siteUUID string, count int) ([]CustomerType, error) {
	var out struct {
		CustomerTypes []CustomerType `json:"customer_types"`
	}
	path := fmt.Sprintf("/sites/%s/customer-types/generate", siteUUID)
	if _, err := c.post(ctx, path, map[string]int{"count": count}, &out); err != nil {
		return nil, err
	}
	return out.CustomerTypes, nil
}

// UpdateCustomerType updates name and/or description.
func (c *Client) UpdateCustomerType(ctx context.Context, uuid, name, description string) error {
	payload := map[string]string{}
	if name != "" {
		payload["name"] = name
	}
	if description != "" {
		payload["description"] = description
	}
	_, err := c.put(ctx, "/customer-types/"+uuid, payload, nil)
	return err
}

// ArchiveCustomerType soft-deletes a customer type.
func (c *Client) ArchiveCustomerType(ctx context.Context, uuid string) error {
	_, err := c.del(ctx, "/customer-types/"+uuid)
	return err
}

// -----------------------------------------------------------------------------
// Personas
// -----------------------------------------------------------------------------

// ListPersonas returns the personas of a customer type.
func (c *Client) ListPersonas(ctx context.Context, typeUUID string) ([]Persona, error) {
	var out struct {
		Personas []Persona `json:"personas"`
	}
	if _, err := c.get(ctx, fmt.Sprintf("/customer-types/%s/personas", typeUUID), &out); err != nil {
		return nil, err
	}
	return out.Personas, nil
}

// GetPersona fetches one persona by UUID.
func (c *Client) GetPersona(ctx context.Context, uuid string) (*Persona, error) {
	var out struct {
		Persona Persona `json:"persona"`
	}
	if _, err := c.get(ctx, "/personas/"+uuid, &out); err != nil {
		return nil, err
	}
	return &out.Persona, nil
}

// CreatePersona creates a persona manually. Free of charge.
func (c *Client) CreatePersona(ctx context.Context, typeUUID, name, description string) (*Persona, error) {
	payload := map[string]string{"name": name}
	if description != "" {
		payload["description"] = description
	}
	var out struct {
		Persona Persona `json:"persona"`
	}
	if _, err := c.post(ctx, fmt.Sprintf("/customer-types/%s/personas", typeUUID), payload, &out); err != nil {
		return nil, err
	}
	return &out.Persona, nil
}

// GeneratePersonas AI-generates count personas for a customer type as
// one batched call. Priced per generated item.
func (c *Client) GeneratePersonas(ctx context.Context, typeUUID string, count int) ([]Persona, error) {
	var out struct {
		Personas []Persona `json:"personas"`
	}
	path := fmt.Sprintf("/customer-types/%s/personas/generate", typeUUID)
	if _, err := c.post(ctx, path, map[string]int{"count": count}, &out); err != nil {
		return nil, err
	}
	return out.Personas, nil
}

// UpdatePersona updates name and/or description.
func (c *Client) UpdatePersona(ctx context.Context, uuid, name, description string) error {
	payload := map[string]string{}
	if name != "" {
		payload["name"] = name
	}
	if description != "" {
		payload["description"] = description
	}
	_, err := c.put(ctx, "/personas/"+uuid, payload, nil)
	return err
}

// ArchivePersona soft-deletes a persona.
func (c *Client) ArchivePersona(ctx context.Context, uuid string) error {
	_, err := c.del(ctx, "/personas/"+uuid)
	return err
}

// -----------------------------------------------------------------------------
// Questions
// -----------------------------------------------------------------------------

// ListQuestions returns the questions of a persona.
func (c *Client) ListQuestions(ctx context.Context, personaUUID string) ([]Question, error) {
	var out struct {
		Questions []Question `json:"questions"`
	}
	if _, err := c.get(ctx, fmt.Sprintf("/personas/%s/questions", personaUUID), &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

// GetQuestion fetches one question, including its latest results.
func (c *Client) GetQuestion(ctx context.Context, uuid string) (*Question, error) {
	var out struct {
		Question Question `json:"question"`
	}
	if _, err := c.get(ctx, fmt.Sprintf("/questions/%s/results", uuid), &out); err != nil {
		return nil, err
	}
	return &out.Question, nil
}

// CreateQuestion creates a question manually. Free of charge.
func (c *Client) CreateQuestion(ctx context.Context, personaUUID, text string) (*Question, error) {
	var out struct {
		Question Question `json:"question"`
	}
	path := fmt.Sprintf("/personas/%s/questions", personaUUID)
	if _, err := c.post(ctx, path, map[string]string{"text": text}, &out); err != nil {
		return nil, err
	}
	return &out.Question, nil
}

// GenerateQuestions AI-generates count questions for a persona as one
// batched call. Priced per call, not per generated question.
func (c *Client) GenerateQuestions(ctx context.Context, personaUUID string, count int) ([]Question, error) {
	var out struct {
		Questions []Question `json:"questions"`
	}
	path := fmt.Sprintf("/personas/%s/questions/generate", personaUUID)
	if _, err := c.post(ctx, path, map[string]int{"count": count}, &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

// UpdateQuestion replaces the question text.
func (c *Client) UpdateQuestion(ctx context.Context, uuid, text string) error {
	_, err := c.put(ctx, "/questions/"+uuid, map[string]string{"text": text}, nil)
	return err
}

// DeleteQuestion permanently deletes a question. Irreversible.
func (c *Client) DeleteQuestion(ctx context.Context, uuid string) error {
	_, err := c.del(ctx, "/questions/"+uuid)
	return err
}
