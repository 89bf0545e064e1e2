// Package transport describes the boundary an RPC or HTTP layer would use to
// expose the record and schema codecs to external collaborators. It is
// intentionally only interfaces: no network transport is implemented here,
// mirroring the teacher's rpc package, which is itself only an interface
// stub awaiting a concrete wire-protocol binding.
package transport

import (
	"context"

	"github.com/solidcoredata/reccodec/bufrange"
	"github.com/solidcoredata/reccodec/record"
	"github.com/solidcoredata/reccodec/rectype"
)

// RecordDecoder is how a remote caller turns a RecordType and a raw byte
// buffer into decoded records without depending on the record package
// directly.
type RecordDecoder interface {
	DecodeRecord(ctx context.Context, req *DecodeRecordRequest) (*DecodeRecordResponse, error)
	DecodeDynamic(ctx context.Context, req *DecodeDynamicRequest) (*DecodeDynamicResponse, error)
}

// DecodeRecordRequest names a RecordType by its rendered type schema and the
// buffer ranges to decode within Buffer, one record per range.
type DecodeRecordRequest struct {
	TypeSchema rectype.TypeSchema
	Buffer     []byte
	Ranges     []bufrange.BufferRange
}

// DecodeRecordResponse carries the decoded records.
type DecodeRecordResponse struct {
	Records []*record.Record
}

// DecodeDynamicRequest names a dynamic (Avro-family) type definition and the
// columnar buffer it describes.
type DecodeDynamicRequest struct {
	TypeDefinitionJSON string
	Buffer             []byte
	Range              bufrange.BufferRange
}

// DecodeDynamicResponse carries the decoded rows.
type DecodeDynamicResponse struct {
	Records []*record.Record
}

// SchemaCodec is how a remote caller encodes and decodes values against a
// generic schema tree without depending on the schema package directly.
type SchemaCodec interface {
	Encode(ctx context.Context, value any) ([]byte, error)
	Decode(ctx context.Context, buf []byte, rng bufrange.BufferRange) (any, error)
}
