// Package document reads and writes scene graphs as YAML.
//
// A document is a tree of node definitions under a single root, plus
// optional detached trees that only serve as alias sources. Nodes carry an
// optional label (id) so that other nodes can alias them and fields can
// mirror their fields:
//
//	version: "1"
//	root:
//	  model: Group
//	  fields:
//	    - name: children
//	      type: MFNode
//	      nodes:
//	        - id: paint
//	          model: Appearance
//	          visible: true
//	          fields:
//	            - {name: baseColor, type: SFColor, value: "1 0 0"}
//	        - model: Appearance
//	          alias: paint
//	          fields:
//	            - {name: baseColor, type: SFColor, value: "1 0 0", is: paint.baseColor}
//
// A node with a proto key is a prototype-nesting node: its parameters are
// the interface of the instantiation and its fields are the body.
package document
