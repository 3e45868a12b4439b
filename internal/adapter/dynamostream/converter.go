package dynamostream

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/kitodo/dlfcheck/internal/model"
)

// ConvertToCheckRecord converts a DynamoDB stream NewImage to a CheckRecord.
// Attribute names follow dynamorepo.DynamoDTO.
func ConvertToCheckRecord(newImage map[string]events.DynamoDBAttributeValue) (*model.CheckRecord, error) {
	if newImage == nil {
		return nil, fmt.Errorf("newImage is nil")
	}

	record := &model.CheckRecord{
		ID:     ExtractStringAttribute(newImage, "PK"),
		Output: ExtractStringAttribute(newImage, "Output"),
		Reason: ExtractStringAttribute(newImage, "Reason"),
	}
	if record.ID == "" {
		return nil, fmt.Errorf("missing required field: ID (PK)")
	}

	if kind, ok := newImage["Kind"]; ok && kind.DataType() == events.DataTypeString {
		record.Kind = kind.String()
	} else {
		return nil, fmt.Errorf("missing required field: Kind")
	}

	if input, ok := newImage["Input"]; ok && input.DataType() == events.DataTypeString {
		record.Input = input.String()
	} else {
		return nil, fmt.Errorf("missing required field: Input")
	}

	if valid, ok := newImage["Valid"]; ok && valid.DataType() == events.DataTypeBoolean {
		record.Valid = valid.Boolean()
	} else {
		return nil, fmt.Errorf("missing required field: Valid")
	}

	if checkTime, ok := newImage["CheckTime"]; ok && checkTime.DataType() == events.DataTypeString {
		t, err := time.Parse(time.RFC3339Nano, checkTime.String())
		if err != nil {
			return nil, fmt.Errorf("invalid CheckTime format: %w", err)
		}
		record.CheckTime = t
	} else {
		return nil, fmt.Errorf("missing required field: CheckTime")
	}

	if rev, ok := newImage["Rev"]; ok && rev.DataType() == events.DataTypeNumber {
		n, err := strconv.ParseInt(rev.Number(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid Rev: %w", err)
		}
		record.Rev = n
	}

	return record, nil
}

// ExtractStringAttribute extracts a string value from DynamoDB attribute map
func ExtractStringAttribute(attrs map[string]events.DynamoDBAttributeValue, key string) string {
	if attr, ok := attrs[key]; ok {
		if attr.DataType() == events.DataTypeString {
			return attr.String()
		}
	}
	return ""
}
