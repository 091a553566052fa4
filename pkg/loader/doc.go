// Package loader builds model types from declarative YAML or JSON schema
// files.
//
//	types:
//	  - name: zoo.Limb
//	    attrs:
//	      side: {kind: enum, values: [left, right]}
//	  - name: zoo.Animal
//	    attrs:
//	      name: string
//	      tags: "[string]"
//	      legs: {kind: list, of: {kind: instance, class: zoo.Limb}, max_len: 4}
//
// An attribute is either a kind name, "[kind]" for a list, or a map with a
// kind key. Keys of the map that are not options become trait metadata.
package loader
