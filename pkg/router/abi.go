package router

// GreeterL2ABI is the public ABI of the L2 greeter contract
const GreeterL2ABI = `[
	{"type":"function","name":"getL1Target","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
	{"type":"function","name":"updateL1Target","inputs":[{"name":"_l1Target","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"greet","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"},
	{"type":"function","name":"setGreeting","inputs":[{"name":"_greeting","type":"string"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"setGreetingInL1","inputs":[{"name":"_greeting","type":"string"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"nonpayable"},
	{"type":"event","name":"CrossLayerMessageCreated","inputs":[{"name":"messageId","type":"uint256","indexed":true}],"anonymous":false}
]`

// Method names as they appear in GreeterL2ABI
const (
	MethodGetL1Target     = "getL1Target"
	MethodUpdateL1Target  = "updateL1Target"
	MethodGreet           = "greet"
	MethodSetGreeting     = "setGreeting"
	MethodSetGreetingInL1 = "setGreetingInL1"
)
