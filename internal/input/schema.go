// Package input decodes purchase documents after validating them against a JSON schema.
package input

const purchaseDefinitions = `
"purchase": {
	"type": "object",
	"additionalProperties": false,
	"required": ["itemName", "cost"],
	"properties": {
		"itemName": {"type": "string", "pattern": "\\S"},
		"cost": {"type": "number", "minimum": 0},
		"purpose": {"type": "string"},
		"frequency": {"enum": ["Daily", "Weekly", "Monthly", "Rarely", "One-time", ""]},
		"alternative": {"$ref": "#/definitions/alternative"},
		"financialProfile": {"$ref": "#/definitions/profile"}
	}
},
"alternative": {
	"type": "object",
	"additionalProperties": false,
	"required": ["name", "price"],
	"properties": {
		"name": {"type": "string"},
		"retailer": {"type": "string"},
		"price": {"type": "number", "minimum": 0}
	}
},
"profile": {
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"monthlyIncome": {"type": "number", "minimum": 0},
		"monthlyExpenses": {"type": "number", "minimum": 0},
		"debtPayments": {"type": "number", "minimum": 0},
		"currentSavings": {"type": "number", "minimum": 0},
		"riskTolerance": {"enum": ["low", "moderate", "high", ""]},
		"financialGoal": {"enum": ["save", "debt", "invest", "balance", ""]}
	}
}`

// PurchaseSchema validates a single purchase document.
const PurchaseSchema = `{
"$schema": "http://json-schema.org/draft-07/schema#",
"definitions": {` + purchaseDefinitions + `},
"allOf": [{"$ref": "#/definitions/purchase"}]
}`

// BatchSchema validates a non-empty array of purchase documents.
const BatchSchema = `{
"$schema": "http://json-schema.org/draft-07/schema#",
"definitions": {` + purchaseDefinitions + `},
"type": "array",
"minItems": 1,
"items": {"$ref": "#/definitions/purchase"}
}`

// ProfileSchema validates a standalone financial profile document.
const ProfileSchema = `{
"$schema": "http://json-schema.org/draft-07/schema#",
"definitions": {` + purchaseDefinitions + `},
"allOf": [{"$ref": "#/definitions/profile"}]
}`
