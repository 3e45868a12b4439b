package dynamorepo

import (
	"time"

	"github.com/kitodo/dlfcheck/internal/model"
)

// DynamoDTO represents the persistence layer DTO for DynamoDB.
// The partition key PK holds the record ID; the table has no sort key.
type DynamoDTO struct {
	PK        string    `dynamodbav:"PK"`
	Kind      string    `dynamodbav:"Kind"`
	Input     string    `dynamodbav:"Input"`
	Output    string    `dynamodbav:"Output,omitempty"`
	Valid     bool      `dynamodbav:"Valid"`
	Reason    string    `dynamodbav:"Reason,omitempty"`
	CheckTime time.Time `dynamodbav:"CheckTime"`
	Rev       int64     `dynamodbav:"Rev"`
}

// ToDomain converts a DynamoDTO to a CheckRecord
func (dto *DynamoDTO) ToDomain() *model.CheckRecord {
	return &model.CheckRecord{
		ID:        dto.PK,
		Kind:      dto.Kind,
		Input:     dto.Input,
		Output:    dto.Output,
		Valid:     dto.Valid,
		Reason:    dto.Reason,
		CheckTime: dto.CheckTime,
		Rev:       dto.Rev,
	}
}

// FromDomain creates a DynamoDTO from a CheckRecord
func FromDomain(record *model.CheckRecord) *DynamoDTO {
	return &DynamoDTO{
		PK:        record.ID,
		Kind:      record.Kind,
		Input:     record.Input,
		Output:    record.Output,
		Valid:     record.Valid,
		Reason:    record.Reason,
		CheckTime: record.CheckTime,
		Rev:       record.Rev,
	}
}

// ToDomainList converts a slice of DynamoDTOs to CheckRecords
func ToDomainList(dtos []*DynamoDTO) []*model.CheckRecord {
	records := make([]*model.CheckRecord, len(dtos))
	for i, dto := range dtos {
		records[i] = dto.ToDomain()
	}
	return records
}
