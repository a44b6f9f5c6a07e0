// Package rules models the shift-rule configuration edited on the rules
// page: the rule set itself plus the compact field encodings the settings
// form round-trips through hidden inputs.
//
// Three text codecs and two JSON fields are in play:
//
//	pairs        "alice-bob,carol-dave"
//	attributes   "alice:driver|keyholder,bob:"
//	requirements "driver:2,keyholder:1"
//	defined attributes        JSON array of names
//	specialized requirements  JSON object, category -> employees
//
// Mutations guard the same conditions the form guards: no self-pairs, no
// duplicate pairs in either order, no duplicate attribute names. Violating a
// guard returns a UserInputError and leaves the set untouched.
package rules
