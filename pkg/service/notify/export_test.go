package notify

var BuildFailureBlocks = buildFailureBlocks
