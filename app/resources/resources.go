// Package resources holds the transformers that shape models into their
// public JSON form.
package resources

import (
	"encoding/json"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/pkg/resource"
)

// ReviewResource renders a review with its author's display name.
type ReviewResource struct{}

func (ReviewResource) ToMap(v interface{}) resource.Map {
	r := v.(models.Review)
	return resource.Map{
		"id":         r.ID,
		"medicineId": r.MedicineID,
		"rating":     r.Rating,
		"comment":    r.Comment,
		"author":     r.User.Name,
		"createdAt":  resource.Time(r.CreatedAt),
	}
}

// NotificationResource renders an inbox entry, decoding the stored JSON
// payload back into an object.
type NotificationResource struct{}

func (NotificationResource) ToMap(v interface{}) resource.Map {
	n := v.(models.Notification)

	var data interface{}
	if n.Data != "" {
		if err := json.Unmarshal([]byte(n.Data), &data); err != nil {
			data = nil
		}
	}

	return resource.Map{
		"id":        n.ID,
		"type":      n.Type,
		"message":   n.Message,
		"data":      data,
		"readAt":    resource.TimePtr(n.ReadAt),
		"createdAt": resource.Time(n.CreatedAt),
	}
}
