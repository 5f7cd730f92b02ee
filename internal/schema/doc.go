// Package schema loads model schemas from YAML and compiles them into the
// collaborators an entity consults for every field access.
//
// A schema file declares models. Each model lists its fields, which of them
// mass assignment may fill, which accept nil, and the accessor kind, getter
// and setter attached to a field:
//
//	version: "1"
//	models:
//	  - name: user
//	    fields: [id, name, email, tags, address]
//	    fillable: [name, email, tags, address]
//	    accessors:
//	      tags: list
//	      address: address     # another model: embedded as an entity
//	    getters:
//	      email: {expr: "value.lowerAscii()"}
//	    setters:
//	      name: trim           # a mutator from the library
//	  - name: address
//	    fillable: "*"
//	permissions:
//	  - subject: editor
//	    model: user
//	    fields: [name, email]
//	roles:
//	  - subject: alice
//	    role: editor
//
// Schemas are checked by Environment.Validate and turned into a Catalog by
// Environment.Compile. Permissions, when present, let a Catalog answer fill
// authorization on behalf of a subject instead of the model's lists.
package schema
