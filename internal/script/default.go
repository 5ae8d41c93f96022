// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package script

// =============================================================================
// BUILT-IN CONVERSATION
// =============================================================================

const outerFunctionExample = `function outerFunction() {
  let outerVariable = "I'm from the outer scope!";

  return function innerFunction() {
    console.log(outerVariable);
  };
}

const myClosure = outerFunction();
myClosure(); // Logs: "I'm from the outer scope!"`

const counterExample = `function Counter() {
  let count = 0;

  return {
    increment() {
      count++;
      return count;
    },
    decrement() {
      count--;
      return count;
    },
  };
}

const counter = Counter();
console.log(counter.increment()); // 1
console.log(counter.increment()); // 2
console.log(counter.decrement()); // 1`

var defaultTurns = []Turn{
	{
		Speaker: AgentOne,
		Message: "Can you explain closures in JavaScript? They can be tricky to understand.",
	},
	{
		Speaker: AgentTwo,
		Message: "Sure! A closure is formed when a function retains access to its outer lexical environment, even after that outer function has executed.",
	},
	{
		Speaker: AgentTwo,
		Code:    outerFunctionExample,
	},
	{
		Speaker: AgentOne,
		Message: "Interesting! So closures allow the `innerFunction` to access `outerVariable`, even after `outerFunction` has returned?",
	},
	{
		Speaker: AgentTwo,
		Message: "Exactly! It's because the `innerFunction` retains a reference to its lexical scope. It's very useful in many scenarios, like data hiding or creating private variables.",
	},
	{
		Speaker: AgentOne,
		Message: "Could you show an example of data hiding using closures?",
	},
	{
		Speaker: AgentTwo,
		Code:    counterExample,
	},
	{
		Speaker: AgentOne,
		Message: "That's a great example! The `count` variable is private, and only accessible through the returned methods. Closures are powerful.",
	},
}

var defaultChats = []Chat{
	{ID: 1, Name: "Chat about React.js"},
	{ID: 2, Name: "Chat about Node.js"},
	{ID: 3, Name: "Chat about AI Ethics"},
	{ID: 4, Name: "Chat about TypeScript"},
}

// Default returns the built-in closures conversation.
func Default() *Script {
	return MustNew(defaultTurns, defaultChats)
}
