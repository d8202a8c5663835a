package validators

import "go.mongodb.org/mongo-driver/bson"

var EmployeeValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"shop_id",
			"name",
			"phone",
			"capabilities",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"shop_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"phone": bson.M{
				"bsonType": "string",
				"pattern":  `^\+[1-9]\d{7,14}$`,
			},

			"capabilities": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"maxItems": 5,
				"items": bson.M{
					"bsonType": "string",
					"enum":     []string{"RECEPTIONIST", "TECHNICIAN"},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var ShiftAssignmentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"employee_id",
			"shop_id",
			"slot",
			"date",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"employee_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"shop_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"slot": bson.M{
				"bsonType": "string",
				"enum":     []string{"MORNING", "AFTERNOON", "EVENING"},
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
