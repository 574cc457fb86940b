// Package dynamodb implements kvstore.Store on an Amazon DynamoDB table.
//
// Table schema:
//   - Partition key: ns (string) - the index namespace
//   - Sort key: k (string) - the entry key
//   - Attribute v (binary) - the entry value
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name flatfa-index \
//	  --attribute-definitions AttributeName=ns,AttributeType=S AttributeName=k,AttributeType=S \
//	  --key-schema AttributeName=ns,KeyType=HASH AttributeName=k,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package dynamodb
