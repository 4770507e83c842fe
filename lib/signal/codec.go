// Copyright 2026 The Far Authors
// SPDX-License-Identifier: Apache-2.0

package signal

import (
	"fmt"

	"github.com/far-foundation/far"
)

// Archive field names. Format constants shared between encode and
// decode.
const (
	fieldData         = "data"
	fieldTimes        = "times"
	fieldFrequencies  = "frequencies"
	fieldSamplingRate = "sampling_rate"
	fieldComment      = "comment"
)

// Register installs the signal, timedata, and frequencydata
// composite codecs into a registry.
func Register(registry *far.Registry) error {
	for _, codec := range []far.CompositeCodec{
		signalCodec{},
		timeDataCodec{},
		frequencyDataCodec{},
	} {
		if err := registry.Register(codec); err != nil {
			return err
		}
	}
	return nil
}

type signalCodec struct{}

func (signalCodec) Tag() string { return "signal" }

func (signalCodec) Instance(v any) bool {
	_, ok := v.(*Signal)
	return ok
}

func (signalCodec) Encode(v any) (*far.FieldMap, error) {
	record, ok := v.(*Signal)
	if !ok {
		return nil, fmt.Errorf("signal codec: cannot encode %T", v)
	}
	fields := far.NewFieldMap()
	fields.Set(fieldData, record.data)
	fields.Set(fieldSamplingRate, record.samplingRate)
	fields.Set(fieldComment, record.comment)
	return fields, nil
}

func (signalCodec) Decode(fields *far.FieldMap) (any, error) {
	data, err := fields.Array(fieldData)
	if err != nil {
		return nil, err
	}
	samplingRate, err := fields.Float64(fieldSamplingRate)
	if err != nil {
		return nil, err
	}
	comment, err := fields.Text(fieldComment)
	if err != nil {
		return nil, err
	}
	return NewSignal(data, samplingRate, comment)
}

type timeDataCodec struct{}

func (timeDataCodec) Tag() string { return "timedata" }

func (timeDataCodec) Instance(v any) bool {
	_, ok := v.(*TimeData)
	return ok
}

func (timeDataCodec) Encode(v any) (*far.FieldMap, error) {
	record, ok := v.(*TimeData)
	if !ok {
		return nil, fmt.Errorf("timedata codec: cannot encode %T", v)
	}
	fields := far.NewFieldMap()
	fields.Set(fieldData, record.data)
	fields.Set(fieldTimes, record.times)
	fields.Set(fieldComment, record.comment)
	return fields, nil
}

func (timeDataCodec) Decode(fields *far.FieldMap) (any, error) {
	data, err := fields.Array(fieldData)
	if err != nil {
		return nil, err
	}
	times, err := fields.Array(fieldTimes)
	if err != nil {
		return nil, err
	}
	comment, err := fields.Text(fieldComment)
	if err != nil {
		return nil, err
	}
	return NewTimeData(data, times, comment)
}

type frequencyDataCodec struct{}

func (frequencyDataCodec) Tag() string { return "frequencydata" }

func (frequencyDataCodec) Instance(v any) bool {
	_, ok := v.(*FrequencyData)
	return ok
}

func (frequencyDataCodec) Encode(v any) (*far.FieldMap, error) {
	record, ok := v.(*FrequencyData)
	if !ok {
		return nil, fmt.Errorf("frequencydata codec: cannot encode %T", v)
	}
	fields := far.NewFieldMap()
	fields.Set(fieldData, record.data)
	fields.Set(fieldFrequencies, record.frequencies)
	fields.Set(fieldComment, record.comment)
	return fields, nil
}

func (frequencyDataCodec) Decode(fields *far.FieldMap) (any, error) {
	data, err := fields.Array(fieldData)
	if err != nil {
		return nil, err
	}
	frequencies, err := fields.Array(fieldFrequencies)
	if err != nil {
		return nil, err
	}
	comment, err := fields.Text(fieldComment)
	if err != nil {
		return nil, err
	}
	return NewFrequencyData(data, frequencies, comment)
}
