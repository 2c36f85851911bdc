package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for contact records stored in BadgerDB. Timestamps
// are stored as unix-micro int64; optional values carry a presence
// flag so that absent and zero are distinguishable after a round trip.

// ContactMUS serializes Contact values.
var ContactMUS = contactSer{}

// EnrichmentMUS serializes Enrichment values.
var EnrichmentMUS = enrichmentSer{}

type contactSer struct{}

func (contactSer) Marshal(c Contact, bs []byte) (n int) {
	n = ord.String.Marshal(c.Id, bs)
	n += ord.String.Marshal(c.Name, bs[n:])
	n += ord.String.Marshal(c.Email, bs[n:])
	n += ord.String.Marshal(c.Phone, bs[n:])
	n += ord.String.Marshal(c.Company, bs[n:])
	n += ord.String.Marshal(c.Role, bs[n:])
	n += ord.String.Marshal(c.LinkedInURL, bs[n:])
	n += ord.String.Marshal(c.CardImageURL, bs[n:])
	n += ord.String.Marshal(c.Location, bs[n:])
	n += ord.String.Marshal(c.Industry, bs[n:])
	n += ord.String.Marshal(c.EventType, bs[n:])
	n += ord.String.Marshal(c.MeetingLocation, bs[n:])
	n += marshalTimePtr(c.MetDate, bs[n:])
	n += marshalStrSlice(c.Tags, bs[n:])
	n += ord.String.Marshal(c.RawContext, bs[n:])
	n += varint.Int.Marshal(c.Priority, bs[n:])
	n += ord.Bool.Marshal(c.Enrichment != nil, bs[n:])
	if c.Enrichment != nil {
		n += EnrichmentMUS.Marshal(*c.Enrichment, bs[n:])
	}
	n += marshalTime(c.CreatedAt, bs[n:])
	n += marshalTime(c.UpdatedAt, bs[n:])
	return n
}

func (contactSer) Unmarshal(bs []byte) (c Contact, n int, err error) {
	var m int
	if c.Id, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	fields := []*string{
		&c.Name, &c.Email, &c.Phone, &c.Company, &c.Role,
		&c.LinkedInURL, &c.CardImageURL, &c.Location, &c.Industry,
		&c.EventType, &c.MeetingLocation,
	}
	for _, f := range fields {
		if *f, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += m
	}
	if c.MetDate, m, err = unmarshalTimePtr(bs[n:]); err != nil {
		return
	}
	n += m
	if c.Tags, m, err = unmarshalStrSlice(bs[n:]); err != nil {
		return
	}
	n += m
	if c.RawContext, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if c.Priority, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	var present bool
	if present, m, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if present {
		var e Enrichment
		if e, m, err = EnrichmentMUS.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += m
		c.Enrichment = &e
	}
	if c.CreatedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return
	}
	n += m
	if c.UpdatedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return
	}
	n += m
	return
}

func (contactSer) Size(c Contact) (size int) {
	size = ord.String.Size(c.Id)
	size += ord.String.Size(c.Name)
	size += ord.String.Size(c.Email)
	size += ord.String.Size(c.Phone)
	size += ord.String.Size(c.Company)
	size += ord.String.Size(c.Role)
	size += ord.String.Size(c.LinkedInURL)
	size += ord.String.Size(c.CardImageURL)
	size += ord.String.Size(c.Location)
	size += ord.String.Size(c.Industry)
	size += ord.String.Size(c.EventType)
	size += ord.String.Size(c.MeetingLocation)
	size += sizeTimePtr(c.MetDate)
	size += sizeStrSlice(c.Tags)
	size += ord.String.Size(c.RawContext)
	size += varint.Int.Size(c.Priority)
	size += ord.Bool.Size(c.Enrichment != nil)
	if c.Enrichment != nil {
		size += EnrichmentMUS.Size(*c.Enrichment)
	}
	size += sizeTime(c.CreatedAt)
	size += sizeTime(c.UpdatedAt)
	return size
}

type enrichmentSer struct{}

func (enrichmentSer) Marshal(e Enrichment, bs []byte) (n int) {
	n = ord.String.Marshal(e.Avatar, bs)
	n += ord.String.Marshal(e.Bio, bs[n:])
	n += ord.String.Marshal(e.LinkedInHandle, bs[n:])
	n += ord.String.Marshal(e.TwitterHandle, bs[n:])
	n += ord.String.Marshal(e.EmployerName, bs[n:])
	n += ord.String.Marshal(e.EmployerDomain, bs[n:])
	n += ord.String.Marshal(e.Seniority, bs[n:])
	n += marshalTime(e.EnrichedAt, bs[n:])
	return n
}

func (enrichmentSer) Unmarshal(bs []byte) (e Enrichment, n int, err error) {
	var m int
	fields := []*string{
		&e.Avatar, &e.Bio, &e.LinkedInHandle, &e.TwitterHandle,
		&e.EmployerName, &e.EmployerDomain, &e.Seniority,
	}
	for _, f := range fields {
		if *f, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += m
	}
	if e.EnrichedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return
	}
	n += m
	return
}

func (enrichmentSer) Size(e Enrichment) (size int) {
	size = ord.String.Size(e.Avatar)
	size += ord.String.Size(e.Bio)
	size += ord.String.Size(e.LinkedInHandle)
	size += ord.String.Size(e.TwitterHandle)
	size += ord.String.Size(e.EmployerName)
	size += ord.String.Size(e.EmployerDomain)
	size += ord.String.Size(e.Seniority)
	size += sizeTime(e.EnrichedAt)
	return size
}

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

func marshalTimePtr(t *time.Time, bs []byte) (n int) {
	n = ord.Bool.Marshal(t != nil, bs)
	if t != nil {
		n += marshalTime(*t, bs[n:])
	}
	return n
}

func unmarshalTimePtr(bs []byte) (*time.Time, int, error) {
	present, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !present {
		return nil, n, err
	}
	t, m, err := unmarshalTime(bs[n:])
	if err != nil {
		return nil, n + m, err
	}
	return &t, n + m, nil
}

func sizeTimePtr(t *time.Time) int {
	if t == nil {
		return ord.Bool.Size(false)
	}
	return ord.Bool.Size(true) + sizeTime(*t)
}

func marshalStrSlice(vs []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(vs), bs)
	for _, v := range vs {
		n += ord.String.Marshal(v, bs[n:])
	}
	return n
}

func unmarshalStrSlice(bs []byte) (vs []string, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil || length == 0 {
		return nil, n, err
	}
	vs = make([]string, length)
	var m int
	for i := range vs {
		if vs[i], m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return nil, n + m, err
		}
		n += m
	}
	return vs, n, nil
}

func sizeStrSlice(vs []string) (size int) {
	size = varint.Int.Size(len(vs))
	for _, v := range vs {
		size += ord.String.Size(v)
	}
	return size
}
