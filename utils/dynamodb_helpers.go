package utils

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ExtractInt safely extracts a numeric attribute from a DynamoDB attribute map
func ExtractInt(item map[string]types.AttributeValue, field string) int {
	if attr, ok := item[field]; ok {
		if v, ok := attr.(*types.AttributeValueMemberN); ok {
			if n, err := strconv.Atoi(v.Value); err == nil {
				return n
			}
		}
	}
	return 0
}

// NumberSet builds a DynamoDB number set from user ids, for ADD/DELETE
// update expressions against set-valued attributes.
func NumberSet(ids ...int) *types.AttributeValueMemberNS {
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, strconv.Itoa(id))
	}
	return &types.AttributeValueMemberNS{Value: values}
}
