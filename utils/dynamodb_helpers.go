package utils

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ExtractString safely extracts a string from a DynamoDB attribute map
func ExtractString(item map[string]types.AttributeValue, field string) string {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberS); ok {
			return v.Value
		}
	}
	return ""
}

// StartKey builds an ExclusiveStartKey from plain string attributes, nil when
// any attribute is missing a value.
func StartKey(attrs map[string]string) map[string]types.AttributeValue {
	key := map[string]types.AttributeValue{}
	for name, value := range attrs {
		if value == "" {
			return nil
		}
		key[name] = &types.AttributeValueMemberS{Value: value}
	}
	if len(key) == 0 {
		return nil
	}
	return key
}
