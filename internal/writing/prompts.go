// Package writing supplies free-writing prompts and a small heuristic
// feedback pass over the finished text.
package writing

import "math/rand/v2"

// defaultPrompts backs the writing mode when the curated prompt
// resource is unavailable.
var defaultPrompts = []string{
	"Describe your perfect day from start to finish.",
	"Write a story that begins: 'The door creaked open and...'",
	"Persuade your head teacher to introduce a new school subject.",
	"Describe a walk through a forest using all five senses.",
	"Write about a time you had to be brave.",
	"Imagine you woke up with a superpower. What happened next?",
	"Write a letter to yourself ten years from now.",
	"Describe the view from the top of a mountain.",
}

// Pick chooses one prompt uniformly at random, preferring the curated
// list and falling back to the built-in bank when it is empty.
func Pick(rng *rand.Rand, curated []string) string {
	bank := curated
	if len(bank) == 0 {
		bank = defaultPrompts
	}
	return bank[rng.IntN(len(bank))]
}
